package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dgouveia/contacasa/internal/database/repository"
)

// fakeStore is an in-memory Store. Passwords are kept in plain text in
// PasswordHash; only the real sqlite store hashes.
type fakeStore struct {
	mu       sync.Mutex
	users    []repository.User
	expenses []repository.Expense
	budgets  []repository.Budget
	failWith error
}

func seededFakeStore() *fakeStore {
	return &fakeStore{
		users: []repository.User{
			{ID: "u1", Name: "Ana", Email: "ana@x.com", CPF: "111", PasswordHash: "secret", Role: repository.RoleMember, Plan: repository.PlanFree},
			{ID: "u2", Name: "Carlos", Email: "carlos@x.com", CPF: "222", PasswordHash: "chefe", Role: repository.RoleAdmin, Plan: repository.PlanFree},
			{ID: "u3", Name: "Suporte", Email: "root@x.com", CPF: "333", PasswordHash: "root", Role: repository.RoleSystemAdmin, Plan: repository.PlanFree},
		},
		budgets: []repository.Budget{{Category: "Mercado", LimitCents: 150000}},
	}
}

func (s *fakeStore) AuthenticateUser(_ context.Context, identifier, password string) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, u := range s.users {
		if (u.Email == identifier || u.CPF == identifier) && u.PasswordHash == password {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) RegisterUser(_ context.Context, name, email, cpf, password string) (repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return repository.User{}, s.failWith
	}
	for _, u := range s.users {
		if u.Email == email || u.CPF == cpf {
			return repository.User{}, repository.ErrDuplicateIdentity
		}
	}
	u := repository.User{
		ID: uuid.NewString(), Name: name, Email: email, CPF: cpf,
		PasswordHash: password, Role: repository.RoleMember, Plan: repository.PlanFree,
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *fakeStore) UpdateUser(_ context.Context, id string, upd repository.UserUpdate) (repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if upd.Name != nil {
			s.users[i].Name = *upd.Name
		}
		if upd.Email != nil {
			s.users[i].Email = *upd.Email
		}
		if upd.CPF != nil {
			s.users[i].CPF = *upd.CPF
		}
		if upd.Avatar != nil {
			s.users[i].Avatar = *upd.Avatar
		}
		if upd.Plan != nil {
			s.users[i].Plan = *upd.Plan
		}
		return s.users[i], nil
	}
	return repository.User{}, fmt.Errorf("update user %s: %w", id, repository.ErrNotFound)
}

func (s *fakeStore) Users(context.Context) ([]repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]repository.User(nil), s.users...), nil
}

func (s *fakeStore) Expenses(context.Context) ([]repository.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]repository.Expense(nil), s.expenses...), nil
}

func (s *fakeStore) Budgets(context.Context) ([]repository.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]repository.Budget(nil), s.budgets...), nil
}

func (s *fakeStore) AddExpense(_ context.Context, e repository.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.expenses = append(s.expenses, e)
	return nil
}

func (s *fakeStore) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete expense %s: %w", id, repository.ErrNotFound)
}

func (s *fakeStore) DeleteAllExpenses(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = nil
	return nil
}

func (s *fakeStore) UpdateExpense(_ context.Context, id string, upd repository.ExpenseUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID != id {
			continue
		}
		if upd.Status != nil {
			s.expenses[i].Status = *upd.Status
		}
		if upd.AmountCents != nil {
			s.expenses[i].AmountCents = *upd.AmountCents
		}
		return nil
	}
	return fmt.Errorf("update expense %s: %w", id, repository.ErrNotFound)
}

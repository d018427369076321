package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dgouveia/contacasa/internal/auth"
	"github.com/dgouveia/contacasa/internal/database"
	"github.com/dgouveia/contacasa/internal/database/repository"
)

// Store is the persistence facade the orchestrator talks to. It composes the
// sqlite repositories behind the backend-agnostic contract: authenticate,
// register, user/expense CRUD and budget reads.
type Store struct {
	db       *sql.DB
	users    *repository.UserRepo
	expenses *repository.ExpenseRepo
	budgets  *repository.BudgetRepo
	seedDemo bool
}

// Options tweak bootstrap behaviour.
type Options struct {
	SeedDemo bool
}

func New(db *sql.DB, opts Options) *Store {
	return &Store{
		db:       db,
		users:    repository.NewUserRepo(db),
		expenses: repository.NewExpenseRepo(db),
		budgets:  repository.NewBudgetRepo(db),
		seedDemo: opts.SeedDemo,
	}
}

// Initialize bootstraps the schema and seed data. Idempotent; called once at
// process start.
func (s *Store) Initialize(ctx context.Context) error {
	if err := database.Migrate(s.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if s.seedDemo {
		if err := database.SeedDefaults(ctx, s.db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}

// AuthenticateUser matches identifier (email or CPF) and password. A miss of
// either kind returns (nil, nil).
func (s *Store) AuthenticateUser(ctx context.Context, identifier, password string) (*repository.User, error) {
	return s.users.Authenticate(ctx, identifier, password)
}

// RegisterUser creates a MEMBER account on the free plan. Collisions on
// email or CPF return repository.ErrDuplicateIdentity.
func (s *Store) RegisterUser(ctx context.Context, name, email, cpf, password string) (repository.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return repository.User{}, err
	}
	u := repository.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		CPF:          cpf,
		PasswordHash: hash,
		Role:         repository.RoleMember,
		Plan:         repository.PlanFree,
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return repository.User{}, err
	}
	created, err := s.users.Get(ctx, u.ID)
	if err != nil {
		return repository.User{}, err
	}
	return *created, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd repository.UserUpdate) (repository.User, error) {
	return s.users.Update(ctx, id, upd)
}

func (s *Store) Users(ctx context.Context) ([]repository.User, error) {
	return s.users.List(ctx)
}

func (s *Store) Expenses(ctx context.Context) ([]repository.Expense, error) {
	return s.expenses.List(ctx)
}

func (s *Store) Budgets(ctx context.Context) ([]repository.Budget, error) {
	return s.budgets.List(ctx)
}

func (s *Store) AddExpense(ctx context.Context, e repository.Expense) error {
	return s.expenses.Insert(ctx, e)
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return s.expenses.Delete(ctx, id)
}

func (s *Store) DeleteAllExpenses(ctx context.Context) error {
	return s.expenses.DeleteAll(ctx)
}

func (s *Store) UpdateExpense(ctx context.Context, id string, upd repository.ExpenseUpdate) error {
	return s.expenses.Update(ctx, id, upd)
}

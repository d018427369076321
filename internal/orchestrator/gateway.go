package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dgouveia/contacasa/internal/database/repository"
)

// ConfirmDeletePrompt is shown before a single expense is removed.
const ConfirmDeletePrompt = "Tem certeza que deseja excluir este lançamento?"

// idGenerator issues expense ids derived from the wall clock in millis,
// bumped forward on collision so ids stay unique for the process lifetime.
type idGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *idGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return strconv.FormatInt(now, 10)
}

func (o *Orchestrator) requireSession() (repository.User, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return repository.User{}, ErrNoActiveSession
	}
	return *o.session, nil
}

// AddExpense persists a new expense under a fresh id, refreshes the cache,
// switches to the expenses tab and confirms with a notification. Expenses
// are shared household data: the draft's UserID may name any user, and no
// ownership check is applied here or on later mutations.
func (o *Orchestrator) AddExpense(ctx context.Context, draft repository.Expense) error {
	if _, err := o.requireSession(); err != nil {
		return err
	}
	if !repository.ValidCategory(draft.Category) {
		return fmt.Errorf("unknown category %q", draft.Category)
	}
	if draft.Status == "" {
		draft.Status = repository.StatusPending
	}
	if !repository.ValidStatus(draft.Status) {
		return fmt.Errorf("unknown status %q", draft.Status)
	}
	if _, err := time.Parse("2006-01-02", draft.Date); err != nil {
		return fmt.Errorf("bad date %q: %w", draft.Date, err)
	}

	draft.ID = o.ids.Next()
	if err := o.store.AddExpense(ctx, draft); err != nil {
		return fmt.Errorf("add expense: %w", err)
	}
	if err := o.refreshExpenses(ctx); err != nil {
		return err
	}

	o.mu.Lock()
	o.view.Tab = TabExpenses
	o.mu.Unlock()
	o.notices.Show(NoticeSaved)
	o.log.Info("expense added", zap.String("expense", draft.ID), zap.Int64("amount_cents", draft.AmountCents))
	return nil
}

// RequestDeleteExpense arms the destructive-action gate for one expense.
// Nothing is touched until the deletion is confirmed.
func (o *Orchestrator) RequestDeleteExpense(id string) error {
	if _, err := o.requireSession(); err != nil {
		return err
	}
	o.mu.Lock()
	o.pendingDelete = id
	o.mu.Unlock()
	return nil
}

// PendingDelete returns the armed expense id, if any.
func (o *Orchestrator) PendingDelete() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pendingDelete, o.pendingDelete != ""
}

// ConfirmPendingDelete performs the armed deletion, refreshes the cache and
// notifies.
func (o *Orchestrator) ConfirmPendingDelete(ctx context.Context) error {
	if _, err := o.requireSession(); err != nil {
		return err
	}
	o.mu.Lock()
	id := o.pendingDelete
	o.pendingDelete = ""
	o.mu.Unlock()
	if id == "" {
		return nil
	}

	if err := o.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if err := o.refreshExpenses(ctx); err != nil {
		return err
	}
	o.notices.Show(NoticeSaved)
	o.log.Info("expense deleted", zap.String("expense", id))
	return nil
}

// DeclinePendingDelete disarms the gate. No state changes, no notification.
func (o *Orchestrator) DeclinePendingDelete() {
	o.mu.Lock()
	o.pendingDelete = ""
	o.mu.Unlock()
}

// DeleteAllExpenses clears every expense for every user. The cache is reset
// to empty rather than re-fetched.
func (o *Orchestrator) DeleteAllExpenses(ctx context.Context) error {
	if _, err := o.requireSession(); err != nil {
		return err
	}
	if err := o.store.DeleteAllExpenses(ctx); err != nil {
		return fmt.Errorf("delete all expenses: %w", err)
	}
	o.mu.Lock()
	o.expenses = nil
	o.mu.Unlock()
	o.notices.Show(NoticeAllCleared)
	o.log.Info("all expenses deleted")
	return nil
}

// UpdateExpenseStatus is a partial update restricted to the status field.
func (o *Orchestrator) UpdateExpenseStatus(ctx context.Context, id, status string) error {
	if _, err := o.requireSession(); err != nil {
		return err
	}
	if !repository.ValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	if err := o.store.UpdateExpense(ctx, id, repository.ExpenseUpdate{Status: &status}); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if err := o.refreshExpenses(ctx); err != nil {
		return err
	}
	o.notices.Show(NoticeSaved)
	return nil
}

package orchestrator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dgouveia/contacasa/internal/database/repository"
)

// Store is the persistence contract the orchestrator consumes. The sqlite
// facade in internal/storage satisfies it; tests substitute fakes.
type Store interface {
	AuthenticateUser(ctx context.Context, identifier, password string) (*repository.User, error)
	RegisterUser(ctx context.Context, name, email, cpf, password string) (repository.User, error)
	UpdateUser(ctx context.Context, id string, upd repository.UserUpdate) (repository.User, error)
	Users(ctx context.Context) ([]repository.User, error)
	Expenses(ctx context.Context) ([]repository.Expense, error)
	Budgets(ctx context.Context) ([]repository.Budget, error)
	AddExpense(ctx context.Context, e repository.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	DeleteAllExpenses(ctx context.Context) error
	UpdateExpense(ctx context.Context, id string, upd repository.ExpenseUpdate) error
}

// Orchestrator owns the session, the view state, the notification slot and
// the read-through caches. It mediates every mutation against the store and
// refreshes its caches after each mutation it initiates; it is not informed
// of externally-originated changes.
type Orchestrator struct {
	store   Store
	log     *zap.Logger
	latency time.Duration
	ttl     time.Duration

	notices Notifier
	ids     idGenerator

	mu            sync.Mutex
	session       *repository.User
	view          ViewState
	users         []repository.User
	expenses      []repository.Expense
	budgets       []repository.Budget
	pendingDelete string
	loginSeq      uint64
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithLatency sets the simulated round-trip delay for session operations.
func WithLatency(d time.Duration) Option {
	return func(o *Orchestrator) { o.latency = d }
}

// WithNoticeTTL sets how long notifications stay visible.
func WithNoticeTTL(d time.Duration) Option {
	return func(o *Orchestrator) { o.ttl = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

func New(store Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:   store,
		log:     zap.NewNop(),
		latency: 500 * time.Millisecond,
		ttl:     3 * time.Second,
		view:    ViewState{Screen: ScreenLanding, Tab: TabDashboard},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Bootstrap fills the caches from the store. Called once after the store has
// been initialized.
func (o *Orchestrator) Bootstrap(ctx context.Context) error {
	users, err := o.store.Users(ctx)
	if err != nil {
		return err
	}
	expenses, err := o.store.Expenses(ctx)
	if err != nil {
		return err
	}
	budgets, err := o.store.Budgets(ctx)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.users, o.expenses, o.budgets = users, expenses, budgets
	o.mu.Unlock()
	return nil
}

// View returns the current view state.
func (o *Orchestrator) View() ViewState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

// Session returns a copy of the authenticated user, or nil.
func (o *Orchestrator) Session() *repository.User {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return nil
	}
	u := *o.session
	return &u
}

// Users returns the cached user list.
func (o *Orchestrator) Users() []repository.User {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]repository.User(nil), o.users...)
}

// Expenses returns the cached expense list.
func (o *Orchestrator) Expenses() []repository.Expense {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]repository.Expense(nil), o.expenses...)
}

// Budgets returns the budget list loaded at bootstrap.
func (o *Orchestrator) Budgets() []repository.Budget {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]repository.Budget(nil), o.budgets...)
}

// Notices exposes the notification slot.
func (o *Orchestrator) Notices() *Notifier { return &o.notices }

// NoticeTTL is how long a notification should stay on screen.
func (o *Orchestrator) NoticeTTL() time.Duration { return o.ttl }

// sleep blocks for the configured simulated latency, or until ctx is done.
// Pending operations are not cancellable once the store call starts; this
// only shortens the artificial delay.
func (o *Orchestrator) sleep(ctx context.Context) {
	if o.latency <= 0 {
		return
	}
	t := time.NewTimer(o.latency)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (o *Orchestrator) refreshUsers(ctx context.Context) error {
	users, err := o.store.Users(ctx)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.users = users
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) refreshExpenses(ctx context.Context) error {
	expenses, err := o.store.Expenses(ctx)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.expenses = expenses
	o.mu.Unlock()
	return nil
}

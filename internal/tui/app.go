package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dgouveia/contacasa/internal/database/repository"
	"github.com/dgouveia/contacasa/internal/filter"
	"github.com/dgouveia/contacasa/internal/orchestrator"
	"github.com/dgouveia/contacasa/internal/service"
)

type authMode string

const (
	authLogin    authMode = "login"
	authRegister authMode = "register"
)

// App is the Bubble Tea model. All real state transitions live in the
// orchestrator; the App holds only presentation state: forms, cursors and
// the filter inputs.
type App struct {
	ctx      context.Context
	orch     *orchestrator.Orchestrator
	checkout *service.CheckoutService
	currency string

	authMode   authMode
	adminEntry bool
	busy       bool
	errText    string

	loginForm    *form
	registerForm *form
	expenseForm  *form
	profileForm  *form
	adminForm    *form
	filterForm   *form

	filters       filter.State
	expCursor     int
	repCursor     int
	confirmClear  bool
	width, height int
}

func New(ctx context.Context, orch *orchestrator.Orchestrator, checkout *service.CheckoutService, currency string) *App {
	a := &App{
		ctx:      ctx,
		orch:     orch,
		checkout: checkout,
		currency: currency,
		authMode: authLogin,
	}
	a.loginForm = newForm([]formField{
		{Key: "identifier", Label: "Email ou CPF"},
		{Key: "password", Label: "Senha", Mask: true},
	})
	a.registerForm = newForm(registerFields())
	a.expenseForm = newForm(expenseFields())
	a.adminForm = newForm(registerFields())
	a.filterForm = newForm([]formField{
		{Key: "search", Label: "Busca"},
		{Key: "category", Label: "Categoria"},
		{Key: "user", Label: "Usuário"},
		{Key: "start", Label: "De (aaaa-mm-dd)"},
		{Key: "end", Label: "Até (aaaa-mm-dd)"},
	})
	return a
}

func registerFields() []formField {
	return []formField{
		{Key: "name", Label: "Nome"},
		{Key: "email", Label: "Email"},
		{Key: "cpf", Label: "CPF"},
		{Key: "password", Label: "Senha", Mask: true},
	}
}

func expenseFields() []formField {
	return []formField{
		{Key: "amount", Label: "Valor"},
		{Key: "description", Label: "Descrição"},
		{Key: "location", Label: "Local"},
		{Key: "category", Label: "Categoria"},
		{Key: "date", Label: "Data (aaaa-mm-dd)", Value: time.Now().Format("2006-01-02")},
		{Key: "notes", Label: "Observações"},
	}
}

func (a *App) Init() tea.Cmd { return nil }

// messages

type loginDoneMsg struct {
	ok  bool
	err error
}

type registerDoneMsg struct {
	err error
}

type mutationDoneMsg struct {
	err error
}

type checkoutDoneMsg struct {
	err error
}

type noticeExpiredMsg struct {
	gen uint64
}

// commands

func (a *App) loginCmd(identifier, password string, requireAdmin bool) tea.Cmd {
	return func() tea.Msg {
		ok, err := a.orch.Login(a.ctx, identifier, password, requireAdmin)
		return loginDoneMsg{ok: ok, err: err}
	}
}

func (a *App) registerCmd(name, email, cpf, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.orch.Register(a.ctx, name, email, cpf, password)
		return registerDoneMsg{err: err}
	}
}

func (a *App) updateProfileCmd(upd repository.UserUpdate) tea.Cmd {
	return func() tea.Msg {
		_, err := a.orch.UpdateProfile(a.ctx, upd)
		return mutationDoneMsg{err: err}
	}
}

func (a *App) addExpenseCmd(draft repository.Expense) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: a.orch.AddExpense(a.ctx, draft)}
	}
}

func (a *App) confirmDeleteCmd() tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: a.orch.ConfirmPendingDelete(a.ctx)}
	}
}

func (a *App) deleteAllCmd() tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: a.orch.DeleteAllExpenses(a.ctx)}
	}
}

func (a *App) updateStatusCmd(id, status string) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: a.orch.UpdateExpenseStatus(a.ctx, id, status)}
	}
}

func (a *App) purchaseCmd() tea.Cmd {
	return func() tea.Msg {
		sess := a.orch.Session()
		if sess == nil {
			return checkoutDoneMsg{err: orchestrator.ErrNoActiveSession}
		}
		updated, err := a.checkout.Purchase(a.ctx, *sess)
		if err != nil {
			return checkoutDoneMsg{err: err}
		}
		return checkoutDoneMsg{err: a.orch.CompleteCheckout(a.ctx, updated)}
	}
}

// noticeTimer arms the auto-clear for the currently visible notification.
// The generation travels with the tick so a stale timer cannot clear a
// newer message.
func (a *App) noticeTimer() tea.Cmd {
	if a.orch.Notices().Message() == "" {
		return nil
	}
	gen := a.orch.Notices().Generation()
	return tea.Tick(a.orch.NoticeTTL(), func(time.Time) tea.Msg {
		return noticeExpiredMsg{gen: gen}
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case noticeExpiredMsg:
		a.orch.Notices().Expire(m.gen)
		return a, nil
	case loginDoneMsg:
		a.busy = false
		if m.err != nil {
			a.errText = m.err.Error()
			return a, nil
		}
		if !m.ok {
			a.errText = "Credenciais inválidas"
			return a, nil
		}
		a.errText = ""
		a.loginForm.Reset()
		return a, a.noticeTimer()
	case registerDoneMsg:
		a.busy = false
		if m.err != nil {
			a.errText = m.err.Error()
			return a, nil
		}
		a.errText = ""
		a.registerForm.Reset()
		a.adminForm.Reset()
		return a, a.noticeTimer()
	case mutationDoneMsg:
		a.busy = false
		if m.err != nil {
			a.errText = m.err.Error()
			return a, nil
		}
		a.errText = ""
		a.expenseForm.Reset()
		a.clampCursors()
		return a, a.noticeTimer()
	case checkoutDoneMsg:
		a.busy = false
		if m.err != nil {
			a.errText = m.err.Error()
			return a, nil
		}
		a.errText = ""
		return a, a.noticeTimer()
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.orch.View().Screen {
		case orchestrator.ScreenLanding:
			return a.handleLandingKey(m)
		case orchestrator.ScreenAuth:
			return a.handleAuthKey(m)
		case orchestrator.ScreenCheckout:
			return a.handleCheckoutKey(m)
		default:
			return a.handleHomeKey(m)
		}
	}
	return a, nil
}

func (a *App) clampCursors() {
	n := len(a.orch.Expenses())
	if a.expCursor >= n {
		a.expCursor = 0
	}
	if a.repCursor >= n {
		a.repCursor = 0
	}
}

package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/dgouveia/contacasa/internal/database"
	"github.com/dgouveia/contacasa/internal/database/repository"
	"github.com/dgouveia/contacasa/internal/orchestrator"
	"github.com/dgouveia/contacasa/internal/service"
	"github.com/dgouveia/contacasa/internal/storage"
)

// Cross-screen user flow tests against a real sqlite store with the seeded
// demo household and zero simulated latency.

func flowKey(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func flowApplyMsg(t *testing.T, a *App, msg tea.Msg) *App {
	t.Helper()
	next, cmd := a.Update(msg)
	got, ok := next.(*App)
	if !ok {
		t.Fatalf("Update returned %T, want *App", next)
	}
	return flowDrainCmd(t, got, cmd)
}

func flowPress(t *testing.T, a *App, key string) *App {
	t.Helper()
	return flowApplyMsg(t, a, flowKey(key))
}

func flowType(t *testing.T, a *App, input string) *App {
	t.Helper()
	for _, r := range input {
		a = flowPress(t, a, string(r))
	}
	return a
}

func flowDrainCmd(t *testing.T, a *App, cmd tea.Cmd) *App {
	t.Helper()
	for i := 0; cmd != nil && i < 32; i++ {
		msg := cmd()
		if msg == nil {
			return a
		}
		next, nextCmd := a.Update(msg)
		got, ok := next.(*App)
		if !ok {
			t.Fatalf("command update returned %T, want *App", next)
		}
		a = got
		cmd = nextCmd
	}
	if cmd != nil {
		t.Fatal("command chain exceeded max depth")
	}
	return a
}

func newFlowApp(t *testing.T) *App {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "flow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	store := storage.New(db, storage.Options{SeedDemo: true})
	require.NoError(t, store.Initialize(ctx))

	orch := orchestrator.New(store,
		orchestrator.WithLatency(0),
		orchestrator.WithNoticeTTL(5*time.Millisecond))
	require.NoError(t, orch.Bootstrap(ctx))

	checkout := &service.CheckoutService{Users: store}
	return New(ctx, orch, checkout, "R$")
}

func flowLogin(t *testing.T, a *App, identifier, password string) *App {
	t.Helper()
	a = flowPress(t, a, "enter") // landing -> auth
	a = flowType(t, a, identifier)
	a = flowPress(t, a, "tab")
	a = flowType(t, a, password)
	a = flowPress(t, a, "enter")
	return a
}

func TestFlowLoginReachesDashboard(t *testing.T) {
	t.Parallel()
	a := newFlowApp(t)
	require.Equal(t, orchestrator.ScreenLanding, a.orch.View().Screen)

	a = flowLogin(t, a, "ana@familia.com", "ana123")

	require.Equal(t, orchestrator.ScreenHome, a.orch.View().Screen)
	require.Equal(t, orchestrator.TabDashboard, a.orch.View().Tab)
	sess := a.orch.Session()
	require.NotNil(t, sess)
	require.Equal(t, "Ana Silva", sess.Name)
	require.Empty(t, a.errText)
	require.False(t, a.busy)
}

func TestFlowBadPasswordStaysOnAuth(t *testing.T) {
	t.Parallel()
	a := newFlowApp(t)
	a = flowLogin(t, a, "ana@familia.com", "errada")

	require.Equal(t, orchestrator.ScreenAuth, a.orch.View().Screen)
	require.Nil(t, a.orch.Session())
	require.Equal(t, "Credenciais inválidas", a.errText)
}

func TestFlowEmptyFieldsRejectedLocally(t *testing.T) {
	t.Parallel()
	a := newFlowApp(t)
	a = flowPress(t, a, "enter")
	a = flowPress(t, a, "enter")
	require.Equal(t, "Preencha todos os campos", a.errText)
	require.Equal(t, orchestrator.ScreenAuth, a.orch.View().Screen)
}

func TestFlowRegisterAutoLogin(t *testing.T) {
	t.Parallel()
	a := newFlowApp(t)
	a = flowPress(t, a, "enter")
	a = flowApplyMsg(t, a, tea.KeyMsg{Type: tea.KeyCtrlR}) // switch to register

	a = flowType(t, a, "João Silva")
	a = flowPress(t, a, "tab")
	a = flowType(t, a, "joao@familia.com")
	a = flowPress(t, a, "tab")
	a = flowType(t, a, "999.888.777-66")
	a = flowPress(t, a, "tab")
	a = flowType(t, a, "joao123")
	a = flowPress(t, a, "enter")

	require.Equal(t, orchestrator.ScreenHome, a.orch.View().Screen)
	sess := a.orch.Session()
	require.NotNil(t, sess)
	require.Equal(t, "joao@familia.com", sess.Email)
	require.Equal(t, repository.RoleMember, sess.Role)
	require.Len(t, a.orch.Users(), 4)
}

func TestFlowAddExpenseThenDelete(t *testing.T) {
	t.Parallel()
	a := newFlowApp(t)
	a = flowLogin(t, a, "ana@familia.com", "ana123")

	a = flowPress(t, a, "5") // new expense tab
	require.Equal(t, orchestrator.TabNew, a.orch.View().Tab)

	a = flowType(t, a, "12,50")
	a = flowPress(t, a, "down")
	a = flowType(t, a, "Pizza de sexta")
	a = flowPress(t, a, "down") // location, left empty
	a = flowPress(t, a, "down")
	a = flowType(t, a, "Lazer")
	a = flowPress(t, a, "enter")

	require.Equal(t, orchestrator.TabExpenses, a.orch.View().Tab)
	expenses := a.orch.Expenses()
	require.Len(t, expenses, 1)
	require.Equal(t, int64(1250), expenses[0].AmountCents)
	require.Equal(t, "Lazer", expenses[0].Category)
	require.Equal(t, repository.StatusPending, expenses[0].Status)

	// d arms the gate, n declines, nothing is deleted
	a = flowPress(t, a, "d")
	_, armed := a.orch.PendingDelete()
	require.True(t, armed)
	a = flowPress(t, a, "n")
	require.Len(t, a.orch.Expenses(), 1)

	// d then y goes through
	a = flowPress(t, a, "d")
	a = flowPress(t, a, "y")
	require.Empty(t, a.orch.Expenses())
}

func TestFlowInvalidAmountKeepsDraft(t *testing.T) {
	t.Parallel()
	a := newFlowApp(t)
	a = flowLogin(t, a, "ana@familia.com", "ana123")

	a = flowPress(t, a, "5")
	a = flowType(t, a, "abc")
	a = flowPress(t, a, "enter")

	require.Equal(t, "Valor inválido", a.errText)
	require.Equal(t, orchestrator.TabNew, a.orch.View().Tab)
	require.Empty(t, a.orch.Expenses())
}

func TestFlowCheckoutUpgradesPlan(t *testing.T) {
	t.Parallel()
	a := newFlowApp(t)
	a = flowLogin(t, a, "ana@familia.com", "ana123")

	a = flowPress(t, a, "7") // subscription tab
	require.Equal(t, orchestrator.TabSubscription, a.orch.View().Tab)
	a = flowPress(t, a, "enter")
	require.Equal(t, orchestrator.ScreenCheckout, a.orch.View().Screen)

	a = flowPress(t, a, "enter") // confirm payment
	require.Equal(t, orchestrator.ScreenHome, a.orch.View().Screen)
	require.Equal(t, orchestrator.TabDashboard, a.orch.View().Tab)
	sess := a.orch.Session()
	require.NotNil(t, sess)
	require.Equal(t, repository.PlanPremium, sess.Plan)
}

func TestFlowCheckoutEscCancels(t *testing.T) {
	t.Parallel()
	a := newFlowApp(t)
	a = flowLogin(t, a, "ana@familia.com", "ana123")
	a = flowPress(t, a, "7")
	a = flowPress(t, a, "enter")
	a = flowPress(t, a, "esc")

	require.Equal(t, orchestrator.ScreenHome, a.orch.View().Screen)
	sess := a.orch.Session()
	require.NotNil(t, sess)
	require.Equal(t, repository.PlanFree, sess.Plan)
}

func TestFlowLogoutReturnsToLanding(t *testing.T) {
	t.Parallel()
	a := newFlowApp(t)
	a = flowLogin(t, a, "ana@familia.com", "ana123")

	a = flowApplyMsg(t, a, tea.KeyMsg{Type: tea.KeyCtrlL})

	require.Equal(t, orchestrator.ScreenLanding, a.orch.View().Screen)
	require.Nil(t, a.orch.Session())
	require.Empty(t, a.orch.Notices().Message())
}

func TestFlowViewRenders(t *testing.T) {
	t.Parallel()
	a := newFlowApp(t)
	a = flowApplyMsg(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Contains(t, a.View(), "ContaCasa")

	a = flowLogin(t, a, "ana@familia.com", "ana123")
	require.Contains(t, a.View(), "Dashboard")
}

package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNavigationFromLanding(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t, seededFakeStore())
	require.Equal(t, ScreenLanding, o.View().Screen)

	o.GoToLogin()
	require.Equal(t, ScreenAuth, o.View().Screen)

	o.BackToLanding()
	require.Equal(t, ScreenLanding, o.View().Screen)
}

func TestNavigationIntentsIgnoredOutsideTheirScreen(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t, seededFakeStore())

	// None of these apply on the landing page.
	o.BackToLanding()
	o.SelectTab(TabExpenses)
	o.StartCheckout()
	o.CancelCheckout()
	require.Equal(t, ViewState{Screen: ScreenLanding, Tab: TabDashboard}, o.View())
}

func TestSelectTabRequiresAuthenticatedScreen(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t, seededFakeStore())
	o.GoToLogin()
	o.SelectTab(TabReports)
	require.Equal(t, TabDashboard, o.View().Tab)

	ok, err := o.Login(context.Background(), "ana@x.com", "secret", false)
	require.NoError(t, err)
	require.True(t, ok)

	o.SelectTab(TabReports)
	require.Equal(t, TabReports, o.View().Tab)
}

func TestSelectTabDoesNotGateByRole(t *testing.T) {
	t.Parallel()
	o := loggedInOrchestrator(t, seededFakeStore())

	// A member may select the admin tab; the content is withheld at render
	// time instead.
	o.SelectTab(TabAdmin)
	require.Equal(t, TabAdmin, o.View().Tab)
	require.False(t, o.CanRenderTab(TabAdmin))
}

func TestCheckoutEntryAndExit(t *testing.T) {
	t.Parallel()
	o := loggedInOrchestrator(t, seededFakeStore())
	o.SelectTab(TabSubscription)

	o.StartCheckout()
	require.Equal(t, ScreenCheckout, o.View().Screen)

	o.CancelCheckout()
	require.Equal(t, ViewState{Screen: ScreenHome, Tab: TabDashboard}, o.View())
}

func TestCanRenderTab(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		email string
		pass  string
		tab   Tab
		want  bool
	}{
		{"member sees dashboard", "ana@x.com", "secret", TabDashboard, true},
		{"member blocked from admin", "ana@x.com", "secret", TabAdmin, false},
		{"member blocked from system admin", "ana@x.com", "secret", TabSystemAdmin, false},
		{"admin sees admin", "carlos@x.com", "chefe", TabAdmin, true},
		{"admin blocked from system admin", "carlos@x.com", "chefe", TabSystemAdmin, false},
		{"system admin sees system admin", "root@x.com", "root", TabSystemAdmin, true},
		{"system admin blocked from admin", "root@x.com", "root", TabAdmin, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o := newTestOrchestrator(t, seededFakeStore())
			ok, err := o.Login(context.Background(), tc.email, tc.pass, false)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, tc.want, o.CanRenderTab(tc.tab))
		})
	}
}

func TestCanRenderTabWithoutSession(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t, seededFakeStore())
	for _, tab := range Tabs {
		require.False(t, o.CanRenderTab(tab), "tab %s", tab)
	}
}

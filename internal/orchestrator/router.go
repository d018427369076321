package orchestrator

import "github.com/dgouveia/contacasa/internal/database/repository"

// Navigation intents. Every (state, intent) pair has a defined next state;
// intents that do not apply to the current state are ignored rather than
// rejected.

// GoToLogin moves from the landing page to the auth screen.
func (o *Orchestrator) GoToLogin() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.view.Screen == ScreenLanding {
		o.view.Screen = ScreenAuth
	}
}

// BackToLanding returns from the auth screen to the landing page.
func (o *Orchestrator) BackToLanding() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.view.Screen == ScreenAuth {
		o.view.Screen = ScreenLanding
	}
}

// SelectTab activates a tab. A plain assignment: no permission check happens
// here; tabs the user may not see are withheld at render time via
// CanRenderTab. Without a session the authenticated screen is unreachable,
// so the intent is a no-op.
func (o *Orchestrator) SelectTab(tab Tab) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.view.Screen != ScreenHome {
		return
	}
	o.view.Tab = tab
}

// StartCheckout enters the checkout overlay. Only reachable from the
// authenticated screen.
func (o *Orchestrator) StartCheckout() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.view.Screen == ScreenHome {
		o.view.Screen = ScreenCheckout
	}
}

// CancelCheckout abandons checkout and returns to the dashboard.
func (o *Orchestrator) CancelCheckout() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.view.Screen == ScreenCheckout {
		o.view = ViewState{Screen: ScreenHome, Tab: TabDashboard}
	}
}

// CanRenderTab reports whether the session user may see a tab's content.
// This is a presentation convenience, not an access-control boundary: the
// store must re-check the role on anything that matters.
func (o *Orchestrator) CanRenderTab(tab Tab) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return false
	}
	switch tab {
	case TabAdmin:
		return o.session.Role == repository.RoleAdmin
	case TabSystemAdmin:
		return o.session.Role == repository.RoleSystemAdmin
	}
	return true
}

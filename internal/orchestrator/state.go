package orchestrator

// Screen is the top-level navigation mode. Exactly one is active at a time.
type Screen int

const (
	// ScreenLanding is the unauthenticated entry point.
	ScreenLanding Screen = iota
	// ScreenAuth shows login and registration.
	ScreenAuth
	// ScreenHome is the authenticated tabbed layout.
	ScreenHome
	// ScreenCheckout is the subscription payment overlay, reachable only
	// from ScreenHome.
	ScreenCheckout
)

func (s Screen) String() string {
	switch s {
	case ScreenLanding:
		return "landing"
	case ScreenAuth:
		return "auth"
	case ScreenHome:
		return "home"
	case ScreenCheckout:
		return "checkout"
	}
	return "unknown"
}

// Tab identifies a section inside the authenticated layout.
type Tab string

const (
	TabDashboard       Tab = "dashboard"
	TabExpenses        Tab = "expenses"
	TabAdvancedHistory Tab = "advanced_history"
	TabReports         Tab = "reports"
	TabNew             Tab = "new"
	TabProfile         Tab = "profile"
	TabSubscription    Tab = "subscription"
	TabAdmin           Tab = "admin"
	TabSystemAdmin     Tab = "system_admin"
)

// Tabs lists every tab in display order.
var Tabs = []Tab{
	TabDashboard,
	TabExpenses,
	TabAdvancedHistory,
	TabReports,
	TabNew,
	TabProfile,
	TabSubscription,
	TabAdmin,
	TabSystemAdmin,
}

// ViewState couples the active screen with the active tab. The tab is only
// meaningful when Screen is ScreenHome, but it keeps its last value across
// checkout round trips.
type ViewState struct {
	Screen Screen
	Tab    Tab
}

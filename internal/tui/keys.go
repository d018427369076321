package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dgouveia/contacasa/internal/database/repository"
	"github.com/dgouveia/contacasa/internal/filter"
	"github.com/dgouveia/contacasa/internal/orchestrator"
)

func (a *App) handleLandingKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "enter", "l":
		a.orch.GoToLogin()
	}
	return a, nil
}

func (a *App) handleAuthKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.errText = ""
		a.orch.BackToLanding()
		return a, nil
	case "ctrl+r":
		if a.authMode == authLogin {
			a.authMode = authRegister
		} else {
			a.authMode = authLogin
		}
		a.errText = ""
		return a, nil
	case "ctrl+a":
		a.adminEntry = !a.adminEntry
		return a, nil
	case "enter":
		if a.busy {
			return a, nil
		}
		if a.authMode == authRegister {
			vals := a.registerForm.Values()
			if vals["name"] == "" || vals["email"] == "" || vals["cpf"] == "" || vals["password"] == "" {
				a.errText = "Preencha todos os campos"
				return a, nil
			}
			a.busy = true
			return a, a.registerCmd(vals["name"], vals["email"], vals["cpf"], vals["password"])
		}
		vals := a.loginForm.Values()
		if vals["identifier"] == "" || vals["password"] == "" {
			a.errText = "Preencha todos os campos"
			return a, nil
		}
		a.busy = true
		return a, a.loginCmd(vals["identifier"], vals["password"], a.adminEntry)
	}
	if a.authMode == authRegister {
		return a, a.registerForm.Update(m)
	}
	return a, a.loginForm.Update(m)
}

func (a *App) handleCheckoutKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "enter":
		if a.busy {
			return a, nil
		}
		a.busy = true
		return a, a.purchaseCmd()
	case "esc":
		a.orch.CancelCheckout()
	}
	return a, nil
}

func (a *App) handleHomeKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	// destructive-action gates come first
	if _, armed := a.orch.PendingDelete(); armed {
		switch m.String() {
		case "y", "Y":
			a.busy = true
			return a, a.confirmDeleteCmd()
		case "n", "N", "esc":
			a.orch.DeclinePendingDelete()
		}
		return a, nil
	}
	if a.confirmClear {
		switch m.String() {
		case "y", "Y":
			a.confirmClear = false
			a.busy = true
			return a, a.deleteAllCmd()
		case "n", "N", "esc":
			a.confirmClear = false
		}
		return a, nil
	}

	tab := a.orch.View().Tab
	switch m.String() {
	case "tab":
		a.orch.SelectTab(nextTab(tab, 1))
		return a, nil
	case "shift+tab":
		a.orch.SelectTab(nextTab(tab, -1))
		return a, nil
	case "ctrl+l":
		a.logoutReset()
		return a, nil
	}

	if !tabHasForm(tab) {
		switch m.String() {
		case "q":
			return a, tea.Quit
		}
		if n, err := strconv.Atoi(m.String()); err == nil && n >= 1 && n <= len(orchestrator.Tabs) {
			a.orch.SelectTab(orchestrator.Tabs[n-1])
			return a, nil
		}
	}

	switch tab {
	case orchestrator.TabExpenses:
		return a.handleExpensesKey(m)
	case orchestrator.TabAdvancedHistory:
		return a.handleHistoryKey(m)
	case orchestrator.TabReports:
		return a.handleReportsKey(m)
	case orchestrator.TabNew:
		return a.handleNewExpenseKey(m)
	case orchestrator.TabProfile:
		return a.handleProfileKey(m)
	case orchestrator.TabSubscription:
		if m.String() == "enter" {
			a.orch.StartCheckout()
		}
	case orchestrator.TabAdmin:
		return a.handleAdminKey(m)
	}
	return a, nil
}

func (a *App) logoutReset() {
	a.orch.Logout()
	a.authMode = authLogin
	a.adminEntry = false
	a.busy = false
	a.errText = ""
	a.confirmClear = false
	a.profileForm = nil
	a.filters = filter.State{}
	a.expCursor, a.repCursor = 0, 0
}

func (a *App) handleExpensesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	expenses := a.orch.Expenses()
	switch m.String() {
	case "up", "k":
		if a.expCursor > 0 {
			a.expCursor--
		}
	case "down", "j":
		if a.expCursor < len(expenses)-1 {
			a.expCursor++
		}
	case "d", "backspace", "delete":
		if len(expenses) > 0 {
			_ = a.orch.RequestDeleteExpense(expenses[a.expCursor].ID)
		}
	}
	return a, nil
}

func (a *App) handleHistoryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "enter":
		vals := a.filterForm.Values()
		a.filters = filter.State{
			Search:    vals["search"],
			Category:  vals["category"],
			UserID:    a.userIDByName(vals["user"]),
			StartDate: vals["start"],
			EndDate:   vals["end"],
		}
		return a, nil
	case "esc":
		a.filters = filter.State{}
		a.filterForm.Reset()
		return a, nil
	}
	return a, a.filterForm.Update(m)
}

// userIDByName resolves a typed user name or email to an id for filtering;
// unrecognised input is treated as an id already.
func (a *App) userIDByName(input string) string {
	if input == "" {
		return ""
	}
	for _, u := range a.orch.Users() {
		if u.Name == input || u.Email == input {
			return u.ID
		}
	}
	return input
}

func (a *App) handleReportsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	expenses := a.orch.Expenses()
	switch m.String() {
	case "up", "k":
		if a.repCursor > 0 {
			a.repCursor--
		}
	case "down", "j":
		if a.repCursor < len(expenses)-1 {
			a.repCursor++
		}
	case "p", "n", "c":
		if a.busy || len(expenses) == 0 {
			return a, nil
		}
		status := map[string]string{
			"p": repository.StatusPaid,
			"n": repository.StatusPending,
			"c": repository.StatusCancelled,
		}[m.String()]
		a.busy = true
		return a, a.updateStatusCmd(expenses[a.repCursor].ID, status)
	}
	return a, nil
}

func (a *App) handleNewExpenseKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.orch.SelectTab(orchestrator.TabExpenses)
		return a, nil
	case "enter":
		if a.busy {
			return a, nil
		}
		sess := a.orch.Session()
		if sess == nil {
			return a, nil
		}
		vals := a.expenseForm.Values()
		cents, err := parseAmountCents(vals["amount"])
		if err != nil {
			a.errText = "Valor inválido"
			return a, nil
		}
		draft := repository.Expense{
			UserID:      sess.ID,
			AmountCents: cents,
			Description: vals["description"],
			Location:    vals["location"],
			Category:    vals["category"],
			Date:        vals["date"],
		}
		if vals["notes"] != "" {
			notes := vals["notes"]
			draft.Notes = &notes
		}
		a.busy = true
		return a, a.addExpenseCmd(draft)
	}
	return a, a.expenseForm.Update(m)
}

func (a *App) handleProfileKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.profileForm == nil {
		a.rebuildProfileForm()
	}
	switch m.String() {
	case "ctrl+x":
		a.confirmClear = true
		return a, nil
	case "enter":
		if a.busy || a.profileForm == nil {
			return a, nil
		}
		vals := a.profileForm.Values()
		upd := repository.UserUpdate{}
		if v := vals["name"]; v != "" {
			upd.Name = &v
		}
		if v := vals["email"]; v != "" {
			upd.Email = &v
		}
		if v := vals["cpf"]; v != "" {
			upd.CPF = &v
		}
		if v := vals["avatar"]; v != "" {
			upd.Avatar = &v
		}
		a.busy = true
		return a, a.updateProfileCmd(upd)
	}
	if a.profileForm == nil {
		return a, nil
	}
	return a, a.profileForm.Update(m)
}

func (a *App) rebuildProfileForm() {
	sess := a.orch.Session()
	if sess == nil {
		return
	}
	a.profileForm = newForm([]formField{
		{Key: "name", Label: "Nome", Value: sess.Name},
		{Key: "email", Label: "Email", Value: sess.Email},
		{Key: "cpf", Label: "CPF", Value: sess.CPF},
		{Key: "avatar", Label: "Avatar", Value: sess.Avatar},
	})
}

func (a *App) handleAdminKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "enter":
		if a.busy {
			return a, nil
		}
		vals := a.adminForm.Values()
		if vals["name"] == "" || vals["email"] == "" || vals["cpf"] == "" || vals["password"] == "" {
			a.errText = "Preencha todos os campos"
			return a, nil
		}
		a.busy = true
		return a, a.registerCmd(vals["name"], vals["email"], vals["cpf"], vals["password"])
	}
	return a, a.adminForm.Update(m)
}

func tabHasForm(tab orchestrator.Tab) bool {
	switch tab {
	case orchestrator.TabNew, orchestrator.TabProfile, orchestrator.TabAdmin, orchestrator.TabAdvancedHistory:
		return true
	}
	return false
}

func nextTab(cur orchestrator.Tab, dir int) orchestrator.Tab {
	idx := 0
	for i, t := range orchestrator.Tabs {
		if t == cur {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(orchestrator.Tabs)) % len(orchestrator.Tabs)
	return orchestrator.Tabs[idx]
}

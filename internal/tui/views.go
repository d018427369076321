package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dgouveia/contacasa/internal/database/repository"
	"github.com/dgouveia/contacasa/internal/filter"
	"github.com/dgouveia/contacasa/internal/orchestrator"
)

// styles
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1)
	noticeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle       = lipgloss.NewStyle().Faint(true)
)

var tabTitles = map[orchestrator.Tab]string{
	orchestrator.TabDashboard:       "Dashboard",
	orchestrator.TabExpenses:        "Lançamentos",
	orchestrator.TabAdvancedHistory: "Histórico",
	orchestrator.TabReports:         "Relatórios",
	orchestrator.TabNew:             "Novo",
	orchestrator.TabProfile:         "Perfil",
	orchestrator.TabSubscription:    "Assinatura",
	orchestrator.TabAdmin:           "Admin",
	orchestrator.TabSystemAdmin:     "Sistema",
}

func (a *App) View() string {
	switch a.orch.View().Screen {
	case orchestrator.ScreenLanding:
		return a.renderLanding()
	case orchestrator.ScreenAuth:
		return a.renderAuth()
	case orchestrator.ScreenCheckout:
		return a.renderCheckout()
	default:
		return a.renderHome()
	}
}

func (a *App) renderLanding() string {
	title := titleStyle.Render("ContaCasa")
	body := "Controle as despesas da sua família em um só lugar.\n\n" +
		"[enter] Entrar  [q] Sair"
	return title + "\n\n" + body
}

func (a *App) renderAuth() string {
	var b strings.Builder
	if a.authMode == authRegister {
		b.WriteString(titleStyle.Render("Criar conta"))
		b.WriteString("\n\n")
		b.WriteString(a.registerForm.View())
		b.WriteString("\n[enter] Cadastrar  [ctrl+r] Já tenho conta  [esc] Voltar")
	} else {
		title := "Entrar"
		if a.adminEntry {
			title = "Entrar (acesso administrativo)"
		}
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n\n")
		b.WriteString(a.loginForm.View())
		b.WriteString("\n[enter] Entrar  [ctrl+r] Criar conta  [ctrl+a] Acesso admin  [esc] Voltar")
	}
	if a.busy {
		b.WriteString("\n" + dimStyle.Render("aguarde..."))
	}
	if a.errText != "" {
		b.WriteString("\n" + errStyle.Render(a.errText))
	}
	return b.String()
}

func (a *App) renderCheckout() string {
	sess := a.orch.Session()
	name := ""
	if sess != nil {
		name = sess.Name
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Assinatura Premium"))
	b.WriteString(fmt.Sprintf("\n\nTitular: %s\nPlano Premium: %s 19,90/mês\n\n[enter] Confirmar pagamento  [esc] Cancelar", name, a.currency))
	if a.busy {
		b.WriteString("\n" + dimStyle.Render("processando pagamento..."))
	}
	if a.errText != "" {
		b.WriteString("\n" + errStyle.Render(a.errText))
	}
	return b.String()
}

func (a *App) renderHome() string {
	view := a.orch.View()
	var b strings.Builder
	b.WriteString(a.renderTabBar(view.Tab))
	b.WriteString("\n\n")

	switch view.Tab {
	case orchestrator.TabExpenses:
		b.WriteString(a.renderExpenses())
	case orchestrator.TabAdvancedHistory:
		b.WriteString(a.renderHistory())
	case orchestrator.TabReports:
		b.WriteString(a.renderReports())
	case orchestrator.TabNew:
		b.WriteString(a.renderNewExpense())
	case orchestrator.TabProfile:
		b.WriteString(a.renderProfile())
	case orchestrator.TabSubscription:
		b.WriteString(a.renderSubscription())
	case orchestrator.TabAdmin:
		b.WriteString(a.renderAdmin())
	case orchestrator.TabSystemAdmin:
		b.WriteString(a.renderSystemAdmin())
	default:
		b.WriteString(a.renderDashboard())
	}

	if id, armed := a.orch.PendingDelete(); armed {
		b.WriteString("\n\n" + titleStyle.Render(orchestrator.ConfirmDeletePrompt))
		b.WriteString(fmt.Sprintf("\n%s\n[y] Sim  [n] Não", dimStyle.Render("id "+id)))
	}
	if a.confirmClear {
		b.WriteString("\n\n" + titleStyle.Render("Excluir todos os lançamentos?"))
		b.WriteString("\n[y] Sim  [n] Não")
	}

	if notice := a.orch.Notices().Message(); notice != "" {
		b.WriteString("\n\n" + noticeStyle.Render(notice))
	}
	if a.errText != "" {
		b.WriteString("\n\n" + errStyle.Render(a.errText))
	}
	b.WriteString("\n\n" + dimStyle.Render("[tab] Próxima aba  [shift+tab] Anterior  [ctrl+l] Sair da conta"))
	return b.String()
}

func (a *App) renderTabBar(active orchestrator.Tab) string {
	sess := a.orch.Session()
	var parts []string
	for _, t := range orchestrator.Tabs {
		label := tabTitles[t]
		if t == active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	bar := strings.Join(parts, "")
	who := ""
	if sess != nil {
		who = dimStyle.Render(fmt.Sprintf("%s (%s, plano %s)", sess.Name, sess.Role, sess.Plan))
	}
	return bar + "\n" + who
}

func (a *App) renderDashboard() string {
	expenses := a.orch.Expenses()
	budgets := a.orch.Budgets()

	var total int64
	perCategory := map[string]int64{}
	for _, e := range expenses {
		if e.Status == repository.StatusCancelled {
			continue
		}
		total += e.AmountCents
		perCategory[e.Category] += e.AmountCents
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Visão geral"))
	b.WriteString(fmt.Sprintf("\nTotal do mês: %s\nLançamentos: %d\n\n", a.money(total), len(expenses)))
	b.WriteString("Por categoria (gasto / limite):\n")
	for _, bud := range budgets {
		spent := perCategory[bud.Category]
		marker := " "
		if spent > bud.LimitCents {
			marker = errStyle.Render("!")
		}
		b.WriteString(fmt.Sprintf("%s %-14s %12s / %s\n", marker, bud.Category, a.money(spent), a.money(bud.LimitCents)))
	}
	return b.String()
}

func (a *App) renderExpenses() string {
	expenses := a.orch.Expenses()
	users := a.userNames()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Lançamentos"))
	b.WriteString("\n")
	if len(expenses) == 0 {
		b.WriteString("Nenhum lançamento ainda.\n")
		return b.String()
	}
	for i, e := range expenses {
		marker := " "
		if i == a.expCursor {
			marker = "▶"
		}
		b.WriteString(fmt.Sprintf("%s %s  %-30s  %10s  %-12s  %-9s  %s\n",
			marker, e.Date, clip(e.Description, 30), a.money(e.AmountCents), e.Category, e.Status, users[e.UserID]))
	}
	b.WriteString(dimStyle.Render("[d] Excluir lançamento"))
	return b.String()
}

func (a *App) renderHistory() string {
	filtered := filter.Apply(a.orch.Expenses(), a.filters)
	var b strings.Builder
	b.WriteString(titleStyle.Render("Histórico avançado"))
	b.WriteString("\n\n")
	b.WriteString(a.filterForm.View())
	b.WriteString(dimStyle.Render("[enter] Filtrar  [esc] Limpar filtros"))
	b.WriteString(fmt.Sprintf("\n\n%d lançamento(s)\n", len(filtered)))
	for _, e := range filtered {
		b.WriteString(fmt.Sprintf("  %s  %-30s  %10s  %-12s  %s\n",
			e.Date, clip(e.Description, 30), a.money(e.AmountCents), e.Category, e.Status))
	}
	return b.String()
}

func (a *App) renderReports() string {
	expenses := a.orch.Expenses()
	perStatus := map[string]int64{}
	for _, e := range expenses {
		perStatus[e.Status] += e.AmountCents
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Relatórios"))
	b.WriteString(fmt.Sprintf("\nPagos: %s   Pendentes: %s   Cancelados: %s\n\n",
		a.money(perStatus[repository.StatusPaid]),
		a.money(perStatus[repository.StatusPending]),
		a.money(perStatus[repository.StatusCancelled])))
	for i, e := range expenses {
		marker := " "
		if i == a.repCursor {
			marker = "▶"
		}
		b.WriteString(fmt.Sprintf("%s %s  %-30s  %10s  %s\n", marker, e.Date, clip(e.Description, 30), a.money(e.AmountCents), e.Status))
	}
	b.WriteString(dimStyle.Render("[p] Pago  [n] Pendente  [c] Cancelado"))
	return b.String()
}

func (a *App) renderNewExpense() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Novo lançamento"))
	b.WriteString("\n\n")
	b.WriteString(a.expenseForm.View())
	b.WriteString(dimStyle.Render("Categorias: " + strings.Join(repository.Categories, ", ")))
	b.WriteString("\n" + dimStyle.Render("[enter] Salvar  [esc] Cancelar"))
	return b.String()
}

func (a *App) renderProfile() string {
	if a.profileForm == nil {
		a.rebuildProfileForm()
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Perfil"))
	b.WriteString("\n\n")
	if a.profileForm != nil {
		b.WriteString(a.profileForm.View())
	}
	b.WriteString(dimStyle.Render("[enter] Salvar  [ctrl+x] Excluir todos os lançamentos"))
	return b.String()
}

func (a *App) renderSubscription() string {
	sess := a.orch.Session()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Assinatura"))
	if sess != nil && sess.Plan == repository.PlanPremium {
		b.WriteString("\n\nVocê já está no plano Premium. Obrigado!")
		return b.String()
	}
	b.WriteString("\n\nPlano atual: gratuito\nPremium: relatórios ilimitados e anexos.\n\n")
	b.WriteString(dimStyle.Render("[enter] Assinar Premium"))
	return b.String()
}

func (a *App) renderAdmin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Administração da família"))
	if !a.orch.CanRenderTab(orchestrator.TabAdmin) {
		b.WriteString("\n\n" + dimStyle.Render("Conteúdo disponível apenas para o administrador da família."))
		return b.String()
	}
	b.WriteString("\n\nCadastrar novo membro:\n\n")
	b.WriteString(a.adminForm.View())
	b.WriteString(dimStyle.Render("[enter] Cadastrar"))
	return b.String()
}

func (a *App) renderSystemAdmin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Administração do sistema"))
	if !a.orch.CanRenderTab(orchestrator.TabSystemAdmin) {
		b.WriteString("\n\n" + dimStyle.Render("Conteúdo disponível apenas para o suporte do sistema."))
		return b.String()
	}
	b.WriteString("\n\nContas cadastradas:\n")
	for _, u := range a.orch.Users() {
		b.WriteString(fmt.Sprintf("  %-24s %-28s %-13s plano %s\n", u.Name, u.Email, u.Role, u.Plan))
	}
	return b.String()
}

func (a *App) userNames() map[string]string {
	users := a.orch.Users()
	out := make(map[string]string, len(users))
	for _, u := range users {
		out[u.ID] = u.Name
	}
	return out
}

func (a *App) money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s %d,%02d", sign, a.currency, cents/100, cents%100)
}

func clip(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// parseAmountCents converts a typed amount ("12,50" or "12.50") into cents.
func parseAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = -v
	}
	return int64(v*100 + 0.5), nil
}

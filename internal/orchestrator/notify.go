package orchestrator

import "sync"

// User-facing confirmation messages. The wording is part of the product.
const (
	NoticeSaved       = "Alteração gravada com sucesso"
	NoticeUserCreated = "Novo usuário cadastrado com sucesso"
	NoticeAllCleared  = "Todos os lançamentos foram excluídos. Dashboard zerada."
	NoticePremium     = "Assinatura Premium ativada com sucesso!"
)

// Notifier holds the single-slot auto-expiring notification. Each Show bumps
// a generation counter and only an Expire carrying the current generation
// clears the slot, so a timer armed for an older message can never wipe a
// newer one.
type Notifier struct {
	mu  sync.Mutex
	msg string
	gen uint64
}

// Show replaces the current message and returns the generation the caller
// should hand to Expire once its timer fires.
func (n *Notifier) Show(msg string) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.msg = msg
	return n.gen
}

// Expire clears the slot only when gen still identifies the visible message.
// It reports whether anything was cleared.
func (n *Notifier) Expire(gen uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen || n.msg == "" {
		return false
	}
	n.msg = ""
	return true
}

// Clear empties the slot immediately and invalidates outstanding timers.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.msg = ""
}

// Message returns the currently visible message, empty when none.
func (n *Notifier) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg
}

// Generation returns the generation of the visible message.
func (n *Notifier) Generation() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.gen
}

package orchestrator

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dgouveia/contacasa/internal/database/repository"
)

// Login authenticates against the store after the simulated round trip.
// Credential misses and role misses both come back as (false, nil); the
// caller must not be able to tell them apart, so an admin-only entry point
// cannot be used to probe which accounts exist.
//
// Overlapping logins race on the session write, so every call takes a ticket
// and only the newest outstanding call may apply its result; superseded
// completions are discarded.
func (o *Orchestrator) Login(ctx context.Context, identifier, password string, requireAdmin bool) (bool, error) {
	ticket := atomic.AddUint64(&o.loginSeq, 1)
	o.sleep(ctx)

	u, err := o.store.AuthenticateUser(ctx, identifier, password)
	if err != nil {
		return false, fmt.Errorf("authenticate: %w", err)
	}
	if u == nil {
		o.log.Info("login rejected", zap.String("identifier", identifier))
		return false, nil
	}
	if requireAdmin && u.Role != repository.RoleAdmin && u.Role != repository.RoleSystemAdmin {
		o.log.Info("login rejected", zap.String("identifier", identifier))
		return false, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if ticket != atomic.LoadUint64(&o.loginSeq) {
		// a later attempt is already in flight; this result is stale
		return false, nil
	}
	o.session = u
	o.view = ViewState{Screen: ScreenHome, Tab: TabDashboard}
	o.pendingDelete = ""
	o.log.Info("login", zap.String("user", u.ID), zap.String("role", u.Role))
	return true, nil
}

// Register creates an account. A colliding email or CPF propagates as
// repository.ErrDuplicateIdentity for the caller to render. With no session
// active the new user is logged straight in; with one active (an admin
// provisioning a member) the session stays put and a notification confirms
// the account was created.
func (o *Orchestrator) Register(ctx context.Context, name, email, cpf, password string) (bool, error) {
	o.sleep(ctx)

	u, err := o.store.RegisterUser(ctx, name, email, cpf, password)
	if err != nil {
		return false, fmt.Errorf("register: %w", err)
	}
	if err := o.refreshUsers(ctx); err != nil {
		return false, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		o.session = &u
		o.view = ViewState{Screen: ScreenHome, Tab: TabDashboard}
	} else {
		o.notices.Show(NoticeUserCreated)
	}
	o.log.Info("user registered", zap.String("user", u.ID))
	return true, nil
}

// UpdateProfile applies a partial update to the session user and re-fetches
// the user list so cross-cutting views reflect the change.
func (o *Orchestrator) UpdateProfile(ctx context.Context, upd repository.UserUpdate) (repository.User, error) {
	o.mu.Lock()
	sess := o.session
	o.mu.Unlock()
	if sess == nil {
		return repository.User{}, ErrNoActiveSession
	}

	o.sleep(ctx)
	updated, err := o.store.UpdateUser(ctx, sess.ID, upd)
	if err != nil {
		return repository.User{}, fmt.Errorf("update user: %w", err)
	}
	if err := o.refreshUsers(ctx); err != nil {
		return repository.User{}, err
	}

	o.mu.Lock()
	o.session = &updated
	o.mu.Unlock()
	o.notices.Show(NoticeSaved)
	return updated, nil
}

// CompleteCheckout applies a successful subscription purchase: the updated
// (premium) user becomes the session and the view returns to the dashboard.
func (o *Orchestrator) CompleteCheckout(ctx context.Context, updated repository.User) error {
	if err := o.refreshUsers(ctx); err != nil {
		return err
	}
	o.mu.Lock()
	o.session = &updated
	o.view = ViewState{Screen: ScreenHome, Tab: TabDashboard}
	o.mu.Unlock()
	o.notices.Show(NoticePremium)
	o.log.Info("subscription activated", zap.String("user", updated.ID))
	return nil
}

// Logout clears the session, the notification and any armed delete gate, and
// returns to the landing screen. It never fails, session or not.
func (o *Orchestrator) Logout() {
	o.mu.Lock()
	o.session = nil
	o.view = ViewState{Screen: ScreenLanding, Tab: TabDashboard}
	o.pendingDelete = ""
	o.mu.Unlock()
	o.notices.Clear()
	o.log.Info("logout")
}

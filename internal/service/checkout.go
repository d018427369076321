package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dgouveia/contacasa/internal/database/repository"
)

// UserUpdater is the slice of the store the checkout flow needs.
type UserUpdater interface {
	UpdateUser(ctx context.Context, id string, upd repository.UserUpdate) (repository.User, error)
}

// CheckoutService upgrades an account to the premium plan once payment is
// confirmed. The payment provider round trip is simulated; the real protocol
// is out of scope here.
type CheckoutService struct {
	Users   UserUpdater
	Latency time.Duration
}

// Purchase flips the user's plan to premium and returns the updated user.
func (s *CheckoutService) Purchase(ctx context.Context, user repository.User) (repository.User, error) {
	if s.Latency > 0 {
		t := time.NewTimer(s.Latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return repository.User{}, ctx.Err()
		}
	}
	plan := repository.PlanPremium
	updated, err := s.Users.UpdateUser(ctx, user.ID, repository.UserUpdate{Plan: &plan})
	if err != nil {
		return repository.User{}, fmt.Errorf("activate premium: %w", err)
	}
	return updated, nil
}

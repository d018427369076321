package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dgouveia/contacasa/internal/database/repository"
)

type fakeUserUpdater struct {
	lastID  string
	lastUpd repository.UserUpdate
	err     error
}

func (f *fakeUserUpdater) UpdateUser(ctx context.Context, id string, upd repository.UserUpdate) (repository.User, error) {
	f.lastID = id
	f.lastUpd = upd
	if f.err != nil {
		return repository.User{}, f.err
	}
	return repository.User{ID: id, Plan: *upd.Plan}, nil
}

func TestPurchaseUpgradesPlan(t *testing.T) {
	t.Parallel()
	users := &fakeUserUpdater{}
	svc := &CheckoutService{Users: users}

	updated, err := svc.Purchase(context.Background(), repository.User{ID: "u1", Plan: repository.PlanFree})
	require.NoError(t, err)
	require.Equal(t, repository.PlanPremium, updated.Plan)
	require.Equal(t, "u1", users.lastID)
	require.NotNil(t, users.lastUpd.Plan)
	require.Equal(t, repository.PlanPremium, *users.lastUpd.Plan)
	// Only the plan field is touched.
	require.Nil(t, users.lastUpd.Name)
	require.Nil(t, users.lastUpd.Email)
}

func TestPurchaseStoreFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("db gone")
	svc := &CheckoutService{Users: &fakeUserUpdater{err: boom}}

	_, err := svc.Purchase(context.Background(), repository.User{ID: "u1"})
	require.ErrorIs(t, err, boom)
}

func TestPurchaseHonoursContextDuringLatency(t *testing.T) {
	t.Parallel()
	users := &fakeUserUpdater{}
	svc := &CheckoutService{Users: users, Latency: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Purchase(ctx, repository.User{ID: "u1"})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, users.lastID)
}

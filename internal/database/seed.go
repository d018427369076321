package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dgouveia/contacasa/internal/auth"
	"github.com/dgouveia/contacasa/internal/database/repository"
)

// SeedDefaults ensures the demo household and baseline budgets exist for new
// databases. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	userRepo := repository.NewUserRepo(db)
	existing, err := userRepo.List(ctx)
	if err == nil && len(existing) > 0 {
		return seedBudgets(ctx, db)
	}

	demo := []struct {
		name, email, cpf, password, role string
	}{
		{"Suporte ContaCasa", "suporte@contacasa.app", "000.000.000-00", "suporte123", repository.RoleSystemAdmin},
		{"Carlos Silva", "carlos@familia.com", "111.222.333-44", "admin123", repository.RoleAdmin},
		{"Ana Silva", "ana@familia.com", "555.666.777-88", "ana123", repository.RoleMember},
	}
	for _, d := range demo {
		hash, err := auth.HashPassword(d.password)
		if err != nil {
			return err
		}
		u := repository.User{
			ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte("user:"+d.email)).String(),
			Name:         d.name,
			Email:        d.email,
			CPF:          d.cpf,
			PasswordHash: hash,
			Role:         d.role,
			Plan:         repository.PlanFree,
		}
		if err := userRepo.Insert(ctx, u); err != nil {
			return err
		}
	}
	return seedBudgets(ctx, db)
}

func seedBudgets(ctx context.Context, db *sql.DB) error {
	existing, err := repository.NewBudgetRepo(db).List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	limits := map[string]int64{
		"Mercado":       150000,
		"Lazer":         50000,
		"Contas Fixas":  200000,
		"Transporte":    60000,
		"Saúde":         80000,
		"Educação":      100000,
		"Investimentos": 100000,
		"Outros":        30000,
	}
	// all limits land or none do
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, category := range repository.Categories {
			_, err := tx.ExecContext(ctx, `
			INSERT INTO budgets(category, limit_cents) VALUES(?, ?)
			ON CONFLICT(category) DO UPDATE SET limit_cents = excluded.limit_cents;
			`, category, limits[category])
			if err != nil {
				return err
			}
		}
		return nil
	})
}

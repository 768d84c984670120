package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"empleados/internal/domain/auth"
	"empleados/internal/domain/catalogs"
	"empleados/internal/platform/config"
	"empleados/internal/platform/querier"
)

// CatalogSeed lists the affiliation entries every installation starts with.
var CatalogSeed = map[catalogs.Kind][]string{
	catalogs.KindARL:          {"SURA", "Colmena", "Bolívar", "Positiva"},
	catalogs.KindEPS:          {"SURA", "Sanitas", "Nueva EPS", "Compensar"},
	catalogs.KindPensionFunds: {"Porvenir", "Protección", "Colfondos", "Skandia"},
}

func Seed(ctx context.Context, pool querier.Querier, cfg config.Config) error {
	if err := ensureCatalogs(ctx, pool, catalogs.Kinds, CatalogSeed); err != nil {
		return err
	}
	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureCatalogs(ctx context.Context, pool querier.Querier, kinds []catalogs.Kind, seed map[catalogs.Kind][]string) error {
	for _, kind := range kinds {
		table, err := catalogs.TableFor(kind)
		if err != nil {
			return fmt.Errorf("seed %s: %w", kind, err)
		}
		for _, name := range seed[kind] {
			query := fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", table)
			if _, err := pool.Exec(ctx, query, name); err != nil {
				return fmt.Errorf("seed %s %q: %w", kind, name, err)
			}
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool querier.Querier, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var exists bool
	if err := pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1, $2, $3)
    ON CONFLICT (email) DO NOTHING
  `, email, hash, auth.RoleAdmin); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}

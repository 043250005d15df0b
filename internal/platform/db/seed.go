package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kpidash/internal/domain/auth"
	"kpidash/internal/platform/config"
)

var defaultRoles = []string{
	"Sales Analyst",
	"Support Specialist",
	"Account Manager",
}

type definitionSeed struct {
	Name        string
	DisplayName string
	Unit        string
}

var defaultDefinitions = []definitionSeed{
	{Name: "calls_made", DisplayName: "Calls Made", Unit: "calls"},
	{Name: "deals_closed", DisplayName: "Deals Closed", Unit: "deals"},
	{Name: "revenue", DisplayName: "Revenue", Unit: "USD"},
	{Name: "tickets_resolved", DisplayName: "Tickets Resolved", Unit: "tickets"},
	{Name: "customer_satisfaction", DisplayName: "Customer Satisfaction", Unit: "score"},
}

// Seed is idempotent: existing rows are left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureRoles(ctx, pool); err != nil {
		return err
	}
	if err := ensureDefinitions(ctx, pool); err != nil {
		return err
	}
	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureRoles(ctx context.Context, pool *pgxpool.Pool) error {
	for _, name := range defaultRoles {
		if _, err := pool.Exec(ctx, "INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name); err != nil {
			return err
		}
	}
	return nil
}

func ensureDefinitions(ctx context.Context, pool *pgxpool.Pool) error {
	for _, def := range defaultDefinitions {
		_, err := pool.Exec(ctx, `
    INSERT INTO kpi_definitions (name, display_name, unit)
    VALUES ($1, $2, $3)
    ON CONFLICT (name) DO NOTHING
  `, def.Name, def.DisplayName, def.Unit)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM admin_users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, "INSERT INTO admin_users (email, name, role, password_hash) VALUES ($1, $2, $3, $4)", email, "Administrator", auth.RoleAdmin, hash)
	return err
}

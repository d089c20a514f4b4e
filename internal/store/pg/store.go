// Package pg implementa core.Repository sobre PostgreSQL (pgx/v5).
// Driver alternativo al de documento; mismas semánticas: el update de
// current_refresh_token es un único statement.
package pg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/accountd/internal/store/core"
	migrations "github.com/dropDatabas3/accountd/migrations/postgres"
)

type Store struct{ pool *pgxpool.Pool }

// New crea el pool y aplica el esquema embebido. El ping es best-effort:
// si la DB está caída al arrancar el esquema se aplica en el primer uso manual.
func New(ctx context.Context, dsn string, maxConns int) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if maxConns > 0 {
		pcfg.MaxConns = int32(maxConns)
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 5
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	s := &Store{pool: pool}
	if err := pool.Ping(ctx); err == nil {
		if err := s.applySchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return s, nil
}

// applySchema ejecuta los .sql embebidos en orden lexicográfico.
func (s *Store) applySchema(ctx context.Context) error {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return err
		}
		if _, err := s.pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("pg: apply %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}

const userColumns = `id, full_name, email, username, password_hash, current_refresh_token, avatar_url, cover_image_url, created_at, updated_at`

func scanUser(row pgx.Row) (*core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Username, &u.PasswordHash,
		&u.CurrentRefreshToken, &u.AvatarURL, &u.CoverImageURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByIdentifier(ctx context.Context, identifier string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) OR lower(username) = lower($1)`
	return scanUser(s.pool.QueryRow(ctx, q, identifier))
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.pool.QueryRow(ctx, q, id))
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	const q = `
INSERT INTO users (id, full_name, email, username, password_hash, current_refresh_token, avatar_url, cover_image_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.pool.Exec(ctx, q, u.ID, u.FullName, u.Email, u.Username, u.PasswordHash,
		u.CurrentRefreshToken, u.AvatarURL, u.CoverImageURL, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return core.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) UpdateRefreshToken(ctx context.Context, userID, token string) error {
	const q = `UPDATE users SET current_refresh_token = $2, updated_at = now() WHERE id = $1`
	tag, err := s.pool.Exec(ctx, q, userID, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Package store selecciona el driver de persistencia según configuración.
package store

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/accountd/internal/config"
	"github.com/dropDatabas3/accountd/internal/store/core"
	mongostore "github.com/dropDatabas3/accountd/internal/store/mongo"
	pgstore "github.com/dropDatabas3/accountd/internal/store/pg"
)

// Open abre el repositorio indicado por cfg.Storage.Driver ("mongo" | "pg").
func Open(ctx context.Context, cfg *config.Config) (core.Repository, error) {
	switch cfg.Storage.Driver {
	case "", "mongo":
		return mongostore.New(ctx, cfg.Storage.Mongo.URI, cfg.Storage.Mongo.Database)
	case "pg", "postgres":
		return pgstore.New(ctx, cfg.Storage.PG.DSN, cfg.Storage.PG.MaxConns)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Storage.Driver)
	}
}

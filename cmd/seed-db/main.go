// Command seed-db loads a product fixture file into PostgreSQL.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/cristalhq/aconfig"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/xenking/budogu-admin/db"
	"github.com/xenking/budogu-admin/internal/domain/auth"
	"github.com/xenking/budogu-admin/internal/domain/product"
	"github.com/xenking/budogu-admin/internal/seed"
	"github.com/xenking/budogu-admin/internal/storage/postgres"
)

// Config is read from SEED_ environment variables and flags.
type Config struct {
	DatabaseURL  string `usage:"PostgreSQL connection URL (SEED_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	ProductsFile string `usage:"JSON or gzip JSON products file; empty uses the bundled sample" flag:"products-file"`
	Reset        bool   `default:"false" usage:"Delete every product and restart ids before seeding" flag:"reset"`
	HashKey      string `usage:"Print the hash of this API key for CATALOG_API_KEY_HASHES and exit" flag:"hash-key"`
	APIKeyPepper string `env:"API_KEY_PEPPER" usage:"HMAC pepper used with --hash-key" flag:"api-key-pepper"`
}

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, _ *app.Telemetry) error {
		var cfg Config
		if err := aconfig.LoaderFor(&cfg, aconfig.Config{
			EnvPrefix: "SEED",
			SkipFiles: true,
		}).Load(); err != nil {
			return errors.Wrap(err, "load config")
		}

		if cfg.HashKey != "" {
			_, err := fmt.Fprintln(os.Stdout, auth.HashKey([]byte(cfg.APIKeyPepper), cfg.HashKey))
			return err
		}

		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		}
		if cfg.DatabaseURL == "" {
			return errors.New("database URL is required: set --database-url or DATABASE_URL")
		}
		return run(ctx, lg, cfg)
	})
}

func run(ctx context.Context, lg *zap.Logger, cfg Config) error {
	products, err := readProducts(cfg.ProductsFile)
	if err != nil {
		return err
	}

	lg.Info("Connecting to database")
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	repo := postgres.NewProductRepository(pool)

	if cfg.Reset {
		lg.Warn("Deleting every product")
		if err := repo.Truncate(ctx); err != nil {
			return errors.Wrap(err, "reset")
		}
	} else {
		existing, err := repo.List(ctx)
		if err != nil {
			return errors.Wrap(err, "list products")
		}
		if len(existing) > 0 {
			lg.Info("Products already present, skipping; use --reset to reseed", zap.Int("count", len(existing)))
			return nil
		}
	}

	for _, p := range products {
		created, err := repo.Create(ctx, p)
		if err != nil {
			return errors.Wrapf(err, "create %q", p.NameEN)
		}
		lg.Info("Created product", zap.Int64("id", created.ID), zap.String("name", created.NameJP))
	}
	lg.Info("Seed completed", zap.Int("count", len(products)))
	return nil
}

func readProducts(path string) ([]product.Product, error) {
	if path == "" {
		return seed.Read(bytes.NewReader(db.SeedProducts))
	}
	return seed.ReadFile(path)
}

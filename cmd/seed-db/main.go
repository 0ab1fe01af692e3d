// Command seed-db applies migrations and loads the catalog seed into the
// products table. It can also create an initial admin account.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopease/storefront/db"
	"github.com/shopease/storefront/internal/domain/user"
	"github.com/shopease/storefront/internal/storage/memory"
	"github.com/shopease/storefront/internal/storage/postgres"
)

func main() {
	var (
		databaseURL   string
		productsFile  string
		adminEmail    string
		adminPassword string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "", "path to products JSON file (default: embedded seed)")
	flag.StringVar(&adminEmail, "admin-email", "", "email for the initial admin account (or SHOP_SEED_ADMIN_EMAIL env)")
	flag.StringVar(&adminPassword, "admin-password", "", "password for the initial admin account (or SHOP_SEED_ADMIN_PASSWORD env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if adminEmail == "" {
		adminEmail = os.Getenv("SHOP_SEED_ADMIN_EMAIL")
	}
	if adminPassword == "" {
		adminPassword = os.Getenv("SHOP_SEED_ADMIN_PASSWORD")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, adminEmail, adminPassword); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile, adminEmail, adminPassword string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, pool, productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if adminEmail != "" && adminPassword != "" {
		if err := seedAdmin(ctx, pool, adminEmail, adminPassword); err != nil {
			return errors.Wrap(err, "seed admin account")
		}
	}

	return nil
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, productsFile string) error {
	data := db.SeedProducts
	if productsFile != "" {
		slog.Info("reading products file", slog.String("path", productsFile))

		var err error
		data, err = os.ReadFile(productsFile)
		if err != nil {
			return errors.Wrap(err, "read products file")
		}
	}

	products, err := memory.ParseProducts(data)
	if err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	slog.Info("upserting products", slog.Int("count", len(products)))

	repo := postgres.NewProductRepository(pool)
	for _, p := range products {
		if err := repo.Upsert(ctx, p); err != nil {
			return errors.Wrapf(err, "upsert product %s", p.ID)
		}

		slog.Info("upserted product", slog.String("id", p.ID), slog.String("name", p.Name))
	}

	return nil
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	slog.Info("seeding admin account", slog.String("email", email))

	users := postgres.NewUserRepository(pool)
	if _, err := users.GetByEmail(ctx, email); err == nil {
		slog.Info("admin account already exists, skipping")
		return nil
	} else if !errors.Is(err, user.ErrNotFound) {
		return errors.Wrap(err, "check existing account")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	now := time.Now().UTC()
	if err := users.Create(ctx, &user.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return errors.Wrap(err, "create admin account")
	}

	return nil
}

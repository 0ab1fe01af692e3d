// Command user-import migrates customer accounts from gzip-compressed CSV
// exports of the legacy platform into the users table.
//
// Each export line is "name,email,password" where password is either an
// existing bcrypt hash (kept as-is) or a plaintext password (hashed on
// import). Exports may overlap; emails already imported or already present
// in the database are skipped.
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/shopease/storefront/internal/domain/user"
	"github.com/shopease/storefront/internal/storage/postgres"
)

const (
	bloomCapacity = 10_000_000
	bloomFPR      = 0.001
	progressEvery = 100_000
)

func main() {
	var (
		dataDir     string
		pattern     string
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing account export files")
	flag.StringVar(&pattern, "pattern", "users*.csv.gz", "glob pattern for export files within data-dir")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, pattern, databaseURL); err != nil {
		slog.Error("user import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("user import completed successfully")
}

func run(ctx context.Context, dataDir, pattern, databaseURL string) error {
	files, err := filepath.Glob(filepath.Join(dataDir, pattern))
	if err != nil {
		return errors.Wrap(err, "glob export files")
	}
	if len(files) == 0 {
		return errors.Errorf("no export files matching %s in %s", pattern, dataDir)
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Seed the dedupe filter with emails already in the database so
	// re-running the import is cheap.
	slog.Info("loading existing emails")

	seen, count, err := loadExistingEmails(ctx, pool)
	if err != nil {
		return errors.Wrap(err, "load existing emails")
	}

	slog.Info("existing emails loaded", slog.Int("count", count))

	imp := &importer{
		users: postgres.NewUserRepository(pool),
		seen:  seen,
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, f := range files {
		g.Go(imp.importFile(ctx, f))
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("import summary",
		slog.Uint64("imported", imp.imported),
		slog.Uint64("skipped", imp.skipped),
		slog.Uint64("malformed", imp.malformed),
	)

	return nil
}

func loadExistingEmails(ctx context.Context, pool *pgxpool.Pool) (*bloom.BloomFilter, int, error) {
	filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)

	rows, err := pool.Query(ctx, `SELECT email FROM users`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, 0, err
		}
		filter.AddString(email)
		count++
	}

	return filter, count, rows.Err()
}

// importer holds state shared by the per-file goroutines. The bloom filter
// prefilters duplicate emails across files; a false positive only costs a
// unique-violation error from the insert, which is treated as a skip.
type importer struct {
	users *postgres.UserRepository

	mu        sync.Mutex
	seen      *bloom.BloomFilter
	imported  uint64
	skipped   uint64
	malformed uint64
}

func (imp *importer) importFile(ctx context.Context, path string) func() error {
	return func() error {
		var lines uint64

		err := streamGzLines(ctx, path, func(line string) error {
			lines++
			if lines%progressEvery == 0 {
				slog.Info("import progress",
					slog.String("file", filepath.Base(path)),
					slog.Uint64("lines", lines),
				)
			}
			return imp.importLine(ctx, line)
		})
		if err != nil {
			return errors.Wrapf(err, "import %s", path)
		}

		slog.Info("file complete",
			slog.String("file", filepath.Base(path)),
			slog.Uint64("lines", lines),
		)
		return nil
	}
}

func (imp *importer) importLine(ctx context.Context, line string) error {
	name, email, password, ok := parseRecord(line)
	if !ok {
		imp.mu.Lock()
		imp.malformed++
		imp.mu.Unlock()
		return nil
	}

	imp.mu.Lock()
	dup := imp.seen.TestString(email)
	if !dup {
		imp.seen.AddString(email)
	}
	imp.mu.Unlock()
	if dup {
		imp.mu.Lock()
		imp.skipped++
		imp.mu.Unlock()
		return nil
	}

	hash := password
	if !strings.HasPrefix(hash, "$2") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrapf(err, "hash password for %s", email)
		}
		hash = string(hashed)
	}

	now := time.Now().UTC()
	err := imp.users.Create(ctx, &user.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		imp.mu.Lock()
		imp.skipped++
		imp.mu.Unlock()
		return nil
	case err != nil:
		return errors.Wrapf(err, "create user %s", email)
	}

	imp.mu.Lock()
	imp.imported++
	imp.mu.Unlock()
	return nil
}

// parseRecord splits a "name,email,password" export line. The password field
// may itself contain commas, so only the first two separators split.
func parseRecord(line string) (name, email, password string, ok bool) {
	parts := strings.SplitN(line, ",", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}

	name = strings.TrimSpace(parts[0])
	email = strings.ToLower(strings.TrimSpace(parts[1]))
	password = parts[2]
	if name == "" || email == "" || !strings.Contains(email, "@") || password == "" {
		return "", "", "", false
	}

	return name, email, password, true
}

// streamGzLines opens a gzip-compressed file and calls fn for each line.
func streamGzLines(ctx context.Context, path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}

	return nil
}

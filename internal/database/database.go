package database

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Options tune the gorm session; the zero value logs warnings.
type Options struct {
	Silent bool
}

func Connect(dsn string) (*gorm.DB, error) {
	return ConnectWith(dsn, Options{})
}

func ConnectWith(dsn string, opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	if opts.Silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	if !opts.Silent {
		log.Println("Using SQLite for local development:", dsn)
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        SQLiteDSN(dsn),
		}),
		cfg,
	)
}

// SQLiteDSN adds the pragmas that make concurrent writers queue instead of
// failing with SQLITE_BUSY. File databases also get WAL and immediate
// transactions so readers keep going while a writer holds the lock.
// Parameters already present in dsn are left alone.
func SQLiteDSN(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "busy_timeout") {
		params = append(params, "_pragma=busy_timeout(5000)")
	}
	memory := strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
	if !memory {
		if !strings.Contains(dsn, "journal_mode") {
			params = append(params, "_pragma=journal_mode(WAL)")
		}
		if !strings.Contains(dsn, "_txlock") {
			params = append(params, "_txlock=immediate")
		}
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// LockRow selects one row FOR UPDATE inside tx and reports whether it exists.
// SQLite ignores the locking clause; its writer lock already serialises.
func LockRow(tx *gorm.DB, table, column string, id int64) (bool, error) {
	var found []int64
	err := tx.Table(table).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(column+" = ?", id).
		Limit(1).
		Pluck(column, &found).Error
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// IsUniqueViolation recognises duplicate-key failures from either driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

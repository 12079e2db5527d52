package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type lockProbe struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func TestConnectSQLiteAndLockRow(t *testing.T) {
	db, err := ConnectWith(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), Options{Silent: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&lockProbe{}))
	require.NoError(t, db.Create(&lockProbe{ID: 3, Name: "x"}).Error)

	err = db.Transaction(func(tx *gorm.DB) error {
		ok, err := LockRow(tx, "lock_probes", "id", 3)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = LockRow(tx, "lock_probes", "id", 4)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: ratings.request_id (2067)")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t,
		"skilllink.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate",
		SQLiteDSN("skilllink.db"))
	assert.Equal(t,
		"file:x?mode=memory&cache=shared&_pragma=busy_timeout(5000)",
		SQLiteDSN("file:x?mode=memory&cache=shared"))
	assert.Equal(t,
		"app.db?_pragma=busy_timeout(100)&_pragma=journal_mode(WAL)&_txlock=immediate",
		SQLiteDSN("app.db?_pragma=busy_timeout(100)"))
}

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

func TestSQLiteDSN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "hotel.db", want: "file:hotel.db?" + sqlitePragmas},
		{in: ":memory:", want: "file::memory:?" + sqlitePragmas},
		{in: "file:t1?mode=memory&cache=shared", want: "file:t1?mode=memory&cache=shared&" + sqlitePragmas},
		{in: "file:x.db?_pragma=foreign_keys(0)", want: "file:x.db?_pragma=foreign_keys(0)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SQLiteDSN(tc.in), tc.in)
	}
}

func TestMemoryDSN(t *testing.T) {
	assert.Equal(t, "file:TestBook_a_b?mode=memory&cache=shared", MemoryDSN("TestBook/a b"))
}

func TestConnect_SQLiteMemory(t *testing.T) {
	db, err := Connect(MemoryDSN(t.Name()), nil)
	require.NoError(t, err)

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
	assert.Equal(t, "sqlite3", DriverName(db))
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("x")))

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: rooms.number (2067)")))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, IsUniqueViolation(nil))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(errors.New("constraint failed: FOREIGN KEY constraint failed (787)")))
	assert.False(t, IsForeignKeyViolation(errors.New("disk I/O error")))

	assert.True(t, IsExclusionViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})))
	assert.False(t, IsExclusionViolation(&pgconn.PgError{Code: "23505"}))
}

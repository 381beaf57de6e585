package record

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:recordstore?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(SQLiteSchema)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM optimization_records`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_GetAbsent(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	rec, err := s.Get(context.Background(), "42")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	in := &Record{ImageID: "img_1", Status: StatusOK, UploadedAt: 1000, LastSyncAt: 1000, SourceHash: "sha256:aa"}
	require.NoError(t, s.Put(ctx, "42", in))

	out, err := s.Get(ctx, "42")
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestSQLiteStore_PutOverwrites(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "42", &Record{Status: StatusFailed, LastError: "boom"}))
	require.NoError(t, s.Put(ctx, "42", &Record{ImageID: "img_1", Status: StatusOK}))

	out, err := s.Get(ctx, "42")
	require.NoError(t, err)
	require.Equal(t, StatusOK, out.Status)
	require.Equal(t, "img_1", out.ImageID)
	require.Empty(t, out.LastError)
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "42", &Record{ImageID: "img_1"}))
	require.NoError(t, s.Delete(ctx, "42"))
	require.NoError(t, s.Delete(ctx, "42")) // absent is fine

	out, err := s.Get(ctx, "42")
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestSQLiteStore_DeleteAllAndList(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "1", &Record{ImageID: "img_1"}))
	require.NoError(t, s.Put(ctx, "2", &Record{ImageID: "img_2"}))

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "img_2", all["2"].ImageID)

	require.NoError(t, s.DeleteAll(ctx))
	all, err = s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

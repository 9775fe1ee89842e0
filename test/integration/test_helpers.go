//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"music-catalog/internal/database"
	"music-catalog/internal/model"
	"music-catalog/pkg/objectid"
)

// newTestDB migrates and empties the database named by TEST_DATABASE_URL.
func newTestDB(t *testing.T) (*database.DB, string) {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, database.Migrate(url))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, url, database.PoolOptions{MaxConns: 20})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Pool.Exec(ctx, `TRUNCATE favorites, tracks, albums, artists, users, revoked_tokens, audit_entries`)
	require.NoError(t, err)

	return db, url
}

func newUser(email string) *model.User {
	now := time.Now().UTC()
	return &model.User{ID: objectid.New(), Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
}

package records_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"github.com/mauv0809/scorekeeper/internal/database"
	"github.com/mauv0809/scorekeeper/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a fresh in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (records.RecordStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return records.New(db), db, teardown
}

func TestInsertAndListPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	names := []string{"Ana", "Leo", "Mia", "Ana"}
	for _, name := range names {
		_, err := store.InsertPlayer(ctx, name, []byte{0xFF, 0xD8}, "2024-01-01")
		require.NoError(t, err)
	}

	players, err := store.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, len(names))

	var lastID int64
	for i, p := range players {
		assert.Equal(t, names[i], p.Name, "players must come back in registration order")
		assert.Greater(t, p.ID, lastID, "ids must be strictly increasing")
		assert.Equal(t, []byte{0xFF, 0xD8}, p.Photo)
		assert.Equal(t, "2024-01-01", p.CreatedAt)
		lastID = p.ID
	}
}

func TestInsertPlayerReturnsPersistedRow(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	player, err := store.InsertPlayer(context.Background(), "Ana", []byte{0x89, 0x50}, "2024-01-01")
	require.NoError(t, err)
	require.NotNil(t, player)

	var name, createdAt string
	var photo []byte
	err = db.QueryRow("SELECT name, photo, created_at FROM players WHERE id = ?", player.ID).Scan(&name, &photo, &createdAt)
	require.NoError(t, err)
	assert.Equal(t, name, player.Name)
	assert.Equal(t, photo, player.Photo)
	assert.Equal(t, createdAt, player.CreatedAt)
}

func TestInsertPlayerValidation(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	cases := []struct {
		name  string
		pname string
		photo []byte
		date  string
	}{
		{"missing name", "", []byte{1}, "2024-01-01"},
		{"blank name", "   ", []byte{1}, "2024-01-01"},
		{"missing date", "Ana", []byte{1}, ""},
		{"missing photo", "Ana", nil, "2024-01-01"},
		{"empty photo", "Ana", []byte{}, "2024-01-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			player, err := store.InsertPlayer(ctx, tc.pname, tc.photo, tc.date)
			require.Error(t, err)
			assert.ErrorIs(t, err, records.ErrValidation)
			assert.Nil(t, player)

			players, err := store.ListPlayers(ctx)
			require.NoError(t, err)
			assert.Empty(t, players, "a rejected player must not be stored")
		})
	}
}

func TestInsertAndListMatches(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	input := []records.Match{
		{WinnerName: "Ana", LoserName: "Leo", Date: "2024-01-02", Duration: "5"},
		{WinnerName: "Leo", LoserName: "Ghost", Date: "2024-01-03", Duration: "12.5"},
		{WinnerName: "Ana", LoserName: "Ana", Date: "2024-01-04", Duration: " 7 "},
	}
	var lastID int64
	for _, m := range input {
		id, err := store.InsertMatch(ctx, m.WinnerName, m.LoserName, m.Date, m.Duration)
		require.NoError(t, err)
		assert.Greater(t, id, lastID)
		lastID = id
	}

	matches, err := store.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, len(input))
	for i, m := range matches {
		assert.Equal(t, input[i].WinnerName, m.WinnerName)
		assert.Equal(t, input[i].LoserName, m.LoserName)
		assert.Equal(t, input[i].Date, m.Date)
		assert.Equal(t, input[i].Duration, m.Duration, "duration must round-trip verbatim")
	}
}

func TestInsertMatchValidation(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	t.Run("each field is required", func(t *testing.T) {
		fields := [][4]string{
			{"", "Leo", "2024-01-02", "5"},
			{"Ana", "", "2024-01-02", "5"},
			{"Ana", "Leo", "", "5"},
			{"Ana", "Leo", "2024-01-02", ""},
		}
		for _, f := range fields {
			_, err := store.InsertMatch(ctx, f[0], f[1], f[2], f[3])
			assert.ErrorIs(t, err, records.ErrValidation)
		}
		matches, err := store.ListMatches(ctx)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("winner equal to loser is accepted", func(t *testing.T) {
		_, err := store.InsertMatch(ctx, "Ana", "Ana", "2024-01-02", "5")
		require.NoError(t, err)
	})
}

func TestSnapshot(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		snap, err := store.Snapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, snap.Players)
		assert.Empty(t, snap.Matches)
		assert.NotNil(t, snap.Players)
		assert.NotNil(t, snap.Matches)
	})

	t.Run("contains both tables", func(t *testing.T) {
		_, err := store.InsertPlayer(ctx, "Ana", []byte{1}, "2024-01-01")
		require.NoError(t, err)
		_, err = store.InsertMatch(ctx, "Ana", "Leo", "2024-01-02", "5")
		require.NoError(t, err)

		snap, err := store.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, snap.Players, 1)
		require.Len(t, snap.Matches, 1)
		assert.Equal(t, "Ana", snap.Players[0].Name)
		assert.Equal(t, "Leo", snap.Matches[0].LoserName)
	})
}

func TestConcurrentInserts(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.InsertMatch(ctx, fmt.Sprintf("p%d", i), "Leo", "2024-01-02", "1")
			assert.NoError(t, err)
			_, err = store.ListMatches(ctx)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	matches, err := store.ListMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, matches, n)

	seen := make(map[int64]bool)
	for _, m := range matches {
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true
	}
}

func TestStorageFailure(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec("DROP TABLE matches")
	require.NoError(t, err)

	_, err = store.InsertMatch(context.Background(), "Ana", "Leo", "2024-01-02", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, records.ErrStorage)

	_, err = store.ListMatches(context.Background())
	assert.ErrorIs(t, err, records.ErrStorage)
}

func TestParseDuration(t *testing.T) {
	v, err := records.ParseDuration("5")
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = records.ParseDuration(" 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	for _, bad := range []string{"", "abc", "5 min", "NaN", "Inf"} {
		_, err := records.ParseDuration(bad)
		assert.ErrorIs(t, err, records.ErrValidation, "input %q", bad)
	}
}

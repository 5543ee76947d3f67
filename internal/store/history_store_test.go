package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/shoplist/internal/domain"
)

func TestHistoryStoreAppend(t *testing.T) {
	history := NewHistoryStore(openTestDB(t))
	ctx := context.Background()

	ev, err := history.Append(ctx, domain.HistoryEvent{
		Owner:     "ana",
		ItemName:  "milk",
		Action:    domain.ActionAdd,
		Timestamp: addedAt,
	})
	require.NoError(t, err)
	assert.NotZero(t, ev.ID)
	assert.Equal(t, "milk", ev.ItemName)
}

func TestHistoryStoreListByOwner(t *testing.T) {
	history := NewHistoryStore(openTestDB(t))
	ctx := context.Background()

	events := []domain.HistoryEvent{
		{Owner: "ana", ItemName: "bread", Action: domain.ActionAdd, Timestamp: addedAt.Add(2 * time.Minute)},
		{Owner: "ana", ItemName: "milk", Action: domain.ActionAdd, Timestamp: addedAt},
		{Owner: "ana", ItemName: "milk", Action: domain.ActionRemove, Timestamp: addedAt.Add(time.Minute)},
		{Owner: "ben", ItemName: "tea", Action: domain.ActionAdd, Timestamp: addedAt},
		{Owner: "ana", ItemName: "eggs", Action: domain.ActionAdd, Timestamp: addedAt.Add(2 * time.Minute)},
	}
	for _, ev := range events {
		_, err := history.Append(ctx, ev)
		require.NoError(t, err)
	}

	adds, err := history.ListByOwner(ctx, "ana", domain.ActionAdd)
	require.NoError(t, err)
	require.Len(t, adds, 3)
	assert.Equal(t, "milk", adds[0].ItemName)
	// Equal timestamps fall back to insertion order.
	assert.Equal(t, "bread", adds[1].ItemName)
	assert.Equal(t, "eggs", adds[2].ItemName)
	assert.True(t, addedAt.Equal(adds[0].Timestamp))

	all, err := history.ListByOwner(ctx, "ana", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := history.ListByOwner(ctx, "carl", domain.ActionAdd)
	require.NoError(t, err)
	assert.Empty(t, none)
}

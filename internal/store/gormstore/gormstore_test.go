package gormstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow/internal/events"
	"cashflow/internal/models"
	"cashflow/internal/store"
	"cashflow/internal/store/gormstore"
	"cashflow/internal/testutil"
	"cashflow/internal/uuid"
)

func newStore(t *testing.T) (*gormstore.Store[models.Transaction], *events.Broadcaster) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	b := events.NewBroadcaster()
	return gormstore.New[models.Transaction](db, models.CollectionTransactions, b, b), b
}

func newTx(amount string, due models.Date) models.Transaction {
	return models.NewInstance(testutil.NewTemplate(models.DirectionExpense, amount, due), due)
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	t.Run("generates an identity", func(t *testing.T) {
		tx := newTx("10.00", testutil.Day(2024, 1, 1))
		id, err := s.Create(ctx, &tx)
		require.NoError(t, err)
		assert.True(t, uuid.IsValid(id))

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, tx.Description, got.Description)
		assert.True(t, got.Amount.Equal(tx.Amount))
		assert.True(t, got.DueDate.Equal(testutil.Day(2024, 1, 1)))
	})

	t.Run("keeps a client identity", func(t *testing.T) {
		tx := newTx("5.00", testutil.Day(2024, 1, 2))
		tx.ID = uuid.New()
		id, err := s.Create(ctx, &tx)
		require.NoError(t, err)
		assert.Equal(t, tx.ID, id)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := s.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpdate(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	tx := newTx("10.00", testutil.Day(2024, 1, 1))
	id, err := s.Create(ctx, &tx)
	require.NoError(t, err)

	t.Run("applies fields and bumps version", func(t *testing.T) {
		err := s.Update(ctx, id, map[string]any{"description": "Rent"})
		require.NoError(t, err)

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Rent", got.Description)
		assert.EqualValues(t, 2, got.Version)
	})

	t.Run("matching version", func(t *testing.T) {
		err := s.Update(ctx, id, map[string]any{"description": "Rent 2024"}, store.IfVersion(2))
		require.NoError(t, err)

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.EqualValues(t, 3, got.Version)
	})

	t.Run("stale version", func(t *testing.T) {
		err := s.Update(ctx, id, map[string]any{"description": "Stale"}, store.IfVersion(1))
		assert.ErrorIs(t, err, store.ErrVersionConflict)

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Rent 2024", got.Description)
		assert.EqualValues(t, 3, got.Version)
	})

	t.Run("explicit version wins", func(t *testing.T) {
		err := s.Update(ctx, id, map[string]any{"version": int64(10)})
		require.NoError(t, err)

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.EqualValues(t, 10, got.Version)
	})

	t.Run("missing record", func(t *testing.T) {
		err := s.Update(ctx, uuid.New(), map[string]any{"description": "x"})
		assert.ErrorIs(t, err, store.ErrNotFound)

		err = s.Update(ctx, uuid.New(), map[string]any{"description": "x"}, store.IfVersion(1))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	tx := newTx("10.00", testutil.Day(2024, 1, 1))
	id, err := s.Create(ctx, &tx)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, id), store.ErrNotFound)
}

func TestQueryByField(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	master := uuid.New()
	for i := 0; i < 3; i++ {
		tx := newTx("1.00", testutil.Day(2024, 1, 1+i))
		tx.RecurringID = master
		_, err := s.Create(ctx, &tx)
		require.NoError(t, err)
	}
	other := newTx("1.00", testutil.Day(2024, 2, 1))
	_, err := s.Create(ctx, &other)
	require.NoError(t, err)

	got, err := s.QueryByField(ctx, "recurring_id", master)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = s.QueryByField(ctx, "recurring_id", uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestList(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	for _, d := range []int{5, 1, 3, 2, 4} {
		tx := newTx("1.00", testutil.Day(2024, 1, d))
		_, err := s.Create(ctx, &tx)
		require.NoError(t, err)
	}

	t.Run("ordered descending", func(t *testing.T) {
		got, total, err := s.List(ctx, store.ListOptions{OrderBy: store.OrderBy{Field: "date", Desc: true}})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		require.Len(t, got, 5)
		for i, want := range []int{5, 4, 3, 2, 1} {
			assert.Equal(t, want, got[i].Date.Day())
		}
	})

	t.Run("paginated", func(t *testing.T) {
		got, total, err := s.List(ctx, store.ListOptions{
			OrderBy: store.OrderBy{Field: "date"},
			Offset:  2,
			Limit:   2,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		require.Len(t, got, 2)
		assert.Equal(t, 3, got[0].Date.Day())
		assert.Equal(t, 4, got[1].Date.Day())
	})
}

func TestSubscribe(t *testing.T) {
	s, b := newStore(t)
	ctx := context.Background()

	first := newTx("1.00", testutil.Day(2024, 1, 1))
	_, err := s.Create(ctx, &first)
	require.NoError(t, err)

	sub, err := s.Subscribe(ctx, store.SubscribeOptions{OrderBy: store.OrderBy{Field: "date", Desc: true}})
	require.NoError(t, err)

	snapshot := receive(t, sub.Snapshots())
	require.Len(t, snapshot, 1)

	second := newTx("2.00", testutil.Day(2024, 2, 1))
	_, err = s.Create(ctx, &second)
	require.NoError(t, err)

	snapshot = receive(t, sub.Snapshots())
	require.Len(t, snapshot, 2)
	assert.Equal(t, second.ID, snapshot[0].ID, "newest date first")

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, b.ListenerCount(models.CollectionTransactions))

	_, open := <-sub.Snapshots()
	assert.False(t, open)
}

func TestSubscribeWithoutSource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := gormstore.New[models.Transaction](db, models.CollectionTransactions, nil, nil)

	_, err := s.Subscribe(context.Background(), store.SubscribeOptions{})
	assert.Error(t, err)
}

func receive(t *testing.T, ch <-chan []models.Transaction) []models.Transaction {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

package memory

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/logger"
)

func newDB() *DB {
	return New(Config{L: logger.New(log.New(io.Discard, "", 0))})
}

func insert(t *testing.T, db *DB, ids ...int) {
	t.Helper()

	err := db.RunInTransaction(context.Background(), func(_ context.Context, tx booking.Tx) error {
		for _, id := range ids {
			if err := tx.InsertBooking(booking.Booking{ID: id, GuestName: "guest"}); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)
}

func ids(t *testing.T, db *DB) []int {
	t.Helper()

	bookings, err := db.ListBookings(context.Background())
	require.NoError(t, err)

	out := make([]int, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}

	return out
}

func TestDB_CommitKeepsInsertionOrder(t *testing.T) {
	db := newDB()

	insert(t, db, 1002, 1000)
	insert(t, db, 1001)

	assert.Equal(t, []int{1002, 1000, 1001}, ids(t, db))
}

func TestDB_RollbackOnError(t *testing.T) {
	db := newDB()
	insert(t, db, 1000)

	errBoom := errors.New("boom")

	err := db.RunInTransaction(context.Background(), func(_ context.Context, tx booking.Tx) error {
		require.NoError(t, tx.InsertBooking(booking.Booking{ID: 1001}))
		assert.True(t, tx.DeleteBooking(1000))
		tx.BindIdempotencyKey("k", 1001)

		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	assert.Equal(t, []int{1000}, ids(t, db))

	err = db.RunInTransaction(context.Background(), func(_ context.Context, tx booking.Tx) error {
		_, err := tx.BookingByIdempotencyKey("k")
		assert.ErrorIs(t, err, booking.ErrRecordNotFound)

		return nil
	})
	require.NoError(t, err)
}

func TestDB_RollbackOnPanic(t *testing.T) {
	db := newDB()
	insert(t, db, 1000)

	assert.Panics(t, func() {
		_ = db.RunInTransaction(context.Background(), func(_ context.Context, tx booking.Tx) error {
			tx.DeleteBooking(1000)
			panic("boom")
		})
	})

	assert.Equal(t, []int{1000}, ids(t, db))
}

func TestDB_StagedChangesInvisibleToReaders(t *testing.T) {
	db := newDB()
	insert(t, db, 1000)

	before, err := db.ListBookings(context.Background())
	require.NoError(t, err)

	insert(t, db, 1001)

	assert.Len(t, before, 1)
	assert.Equal(t, []int{1000, 1001}, ids(t, db))
}

func TestDB_InsertDuplicate(t *testing.T) {
	db := newDB()
	insert(t, db, 1000)

	err := db.RunInTransaction(context.Background(), func(_ context.Context, tx booking.Tx) error {
		return tx.InsertBooking(booking.Booking{ID: 1000})
	})
	assert.ErrorIs(t, err, booking.ErrLogic)
}

func TestDB_ReplaceAndDelete(t *testing.T) {
	db := newDB()
	insert(t, db, 1000, 1001, 1002)

	err := db.RunInTransaction(context.Background(), func(_ context.Context, tx booking.Tx) error {
		if err := tx.ReplaceBooking(booking.Booking{ID: 1001, GuestName: "Updated"}); err != nil {
			return err
		}

		assert.True(t, tx.DeleteBooking(1000))
		assert.False(t, tx.DeleteBooking(1000))

		return nil
	})
	require.NoError(t, err)

	bookings, err := db.ListBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "Updated", bookings[0].GuestName)
	assert.Equal(t, 1002, bookings[1].ID)

	err = db.RunInTransaction(context.Background(), func(_ context.Context, tx booking.Tx) error {
		return tx.ReplaceBooking(booking.Booking{ID: 42})
	})
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestDB_IdempotencyKeys(t *testing.T) {
	db := newDB()

	err := db.RunInTransaction(context.Background(), func(_ context.Context, tx booking.Tx) error {
		if err := tx.InsertBooking(booking.Booking{ID: 1000, GuestName: "Asha"}); err != nil {
			return err
		}

		tx.BindIdempotencyKey("key-1", 1000)

		got, err := tx.BookingByIdempotencyKey("key-1")
		require.NoError(t, err)
		assert.Equal(t, "Asha", got.GuestName)

		return nil
	})
	require.NoError(t, err)

	err = db.RunInTransaction(context.Background(), func(_ context.Context, tx booking.Tx) error {
		got, err := tx.BookingByIdempotencyKey("key-1")
		require.NoError(t, err)
		assert.Equal(t, 1000, got.ID)

		tx.DeleteBooking(1000)

		_, err = tx.BookingByIdempotencyKey("key-1")
		assert.ErrorIs(t, err, booking.ErrRecordNotFound)

		return nil
	})
	require.NoError(t, err)
}

func TestDB_NestedTransactionRefused(t *testing.T) {
	db := newDB()

	err := db.RunInTransaction(context.Background(), func(ctx context.Context, _ booking.Tx) error {
		return db.RunInTransaction(ctx, func(context.Context, booking.Tx) error {
			return nil
		})
	})
	assert.ErrorIs(t, err, ErrNestedTransaction)
}

func TestDB_ClosedTransaction(t *testing.T) {
	db := newDB()

	var leaked booking.Tx

	err := db.RunInTransaction(context.Background(), func(_ context.Context, tx booking.Tx) error {
		leaked = tx

		return nil
	})
	require.NoError(t, err)

	assert.ErrorIs(t, leaked.InsertBooking(booking.Booking{ID: 1}), ErrTransactionClosed)
	assert.False(t, leaked.DeleteBooking(1))
	assert.Empty(t, ids(t, db))
}

package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/logger"
)

type Config struct {
	L *logger.Logger
}

// DB is the process-memory ledger. A single mutex guards the booking
// collection and the idempotency index, and it is held for the whole of a
// transaction.
type DB struct {
	mu              sync.Mutex
	l               *logger.Logger
	bookings        []booking.Booking
	idempotencyKeys map[string]int
	nextTrxID       int64
}

type transaction struct {
	id       string
	db       *DB
	bookings []booking.Booking
	keys     map[string]int
	closed   bool
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:               conf.L.Named("storage"),
		idempotencyKeys: make(map[string]int),
	}
}

// RunInTransaction calls fn with exclusive access to a staged copy of the
// ledger. The copy replaces the ledger when fn returns nil and is discarded
// otherwise, including when fn panics.
func (db *DB) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx booking.Tx) error) error {
	if trxID, ok := transactionIDFromContext(ctx); ok {
		return fmt.Errorf("transaction %s is already open: %w", trxID, ErrNestedTransaction)
	}

	trxID, err := db.runLocked(ctx, fn)
	if err != nil {
		db.l.LogDebugf("Transaction %s has been rolled back: %v", trxID, err)

		return err
	}

	db.l.LogDebugf("Transaction %s has been committed", trxID)

	return nil
}

func (db *DB) runLocked(ctx context.Context, fn func(ctx context.Context, tx booking.Tx) error) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx := db.begin()
	defer trx.close()

	if err := fn(withTransactionID(ctx, trx.id), trx); err != nil {
		return trx.id, err
	}

	db.commit(trx)

	return trx.id, nil
}

func (db *DB) begin() *transaction {
	trxID := fmt.Sprintf("trx-%d", db.nextTrxID)
	db.nextTrxID++

	staged := make([]booking.Booking, len(db.bookings))
	copy(staged, db.bookings)

	//nolint:exhaustruct
	return &transaction{
		id:       trxID,
		db:       db,
		bookings: staged,
		keys:     make(map[string]int),
	}
}

func (db *DB) commit(trx *transaction) {
	db.bookings = trx.bookings

	for key, id := range trx.keys {
		db.idempotencyKeys[key] = id
	}
}

// ListBookings returns a copy of the ledger in insertion order.
func (db *DB) ListBookings(_ context.Context) ([]booking.Booking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]booking.Booking, len(db.bookings))
	copy(out, db.bookings)

	return out, nil
}

func (trx *transaction) close() {
	trx.closed = true
}

func (trx *transaction) indexOf(id int) int {
	for i := range trx.bookings {
		if trx.bookings[i].ID == id {
			return i
		}
	}

	return -1
}

func (trx *transaction) Bookings() []booking.Booking {
	return trx.bookings
}

func (trx *transaction) InsertBooking(b booking.Booking) error {
	if trx.closed {
		return fmt.Errorf("transaction %s: %w", trx.id, ErrTransactionClosed)
	}

	if trx.indexOf(b.ID) >= 0 {
		return fmt.Errorf("booking %d already exists: %w", b.ID, booking.ErrLogic)
	}

	trx.bookings = append(trx.bookings, b)

	return nil
}

func (trx *transaction) ReplaceBooking(b booking.Booking) error {
	if trx.closed {
		return fmt.Errorf("transaction %s: %w", trx.id, ErrTransactionClosed)
	}

	idx := trx.indexOf(b.ID)
	if idx < 0 {
		return fmt.Errorf("booking %d: %w", b.ID, booking.ErrNotFound)
	}

	trx.bookings[idx] = b

	return nil
}

func (trx *transaction) DeleteBooking(id int) bool {
	if trx.closed {
		return false
	}

	idx := trx.indexOf(id)
	if idx < 0 {
		return false
	}

	trx.bookings = append(trx.bookings[:idx:idx], trx.bookings[idx+1:]...)

	return true
}

func (trx *transaction) BookingByIdempotencyKey(key string) (booking.Booking, error) {
	id, ok := trx.keys[key]
	if !ok {
		id, ok = trx.db.idempotencyKeys[key]
	}

	if !ok {
		return booking.Booking{}, booking.ErrRecordNotFound
	}

	idx := trx.indexOf(id)
	if idx < 0 {
		return booking.Booking{}, booking.ErrRecordNotFound
	}

	return trx.bookings[idx], nil
}

func (trx *transaction) BindIdempotencyKey(key string, id int) {
	if trx.closed {
		return
	}

	trx.keys[key] = id
}

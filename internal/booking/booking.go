package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/avstrong/hotel/internal/catalog"
	"github.com/avstrong/hotel/internal/logger"
)

type idGenerator interface {
	GetID(ctx context.Context) (int, error)
}

type roomCatalog interface {
	Lookup(name string) (catalog.RoomType, error)
	ListTypes() []catalog.RoomType
}

// Tx is a ledger transaction. Changes are staged and become visible to other
// callers only when the transaction commits.
type Tx interface {
	// Bookings returns the staged collection in insertion order. Callers
	// must not modify it.
	Bookings() []Booking
	InsertBooking(b Booking) error
	ReplaceBooking(b Booking) error
	DeleteBooking(id int) bool
	BookingByIdempotencyKey(key string) (Booking, error)
	BindIdempotencyKey(key string, id int)
}

type storageReader interface {
	ListBookings(ctx context.Context) ([]Booking, error)
}

type storageWriter interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type storage interface {
	storageReader
	storageWriter
}

type Manager struct {
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	catalog     roomCatalog
	now         func() time.Time
}

func New(l *logger.Logger, storage storage, idGenerator idGenerator, catalog roomCatalog) *Manager {
	return &Manager{
		l:           l.Named("ledger"),
		storage:     storage,
		idGenerator: idGenerator,
		catalog:     catalog,
		now:         time.Now,
	}
}

func (m *Manager) RoomTypes() []catalog.RoomType {
	return m.catalog.ListTypes()
}

func (m *Manager) lookupRoomType(name string) (catalog.RoomType, error) {
	rt, err := m.catalog.Lookup(name)
	if err != nil {
		return catalog.RoomType{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return rt, nil
}

func (b *Booking) derive(rt catalog.RoomType) {
	b.Nights = b.CheckOut.DaysSince(b.CheckIn)
	b.TotalPrice = b.Nights * rt.PricePerNight
}

// CreateBooking assigns the lowest free room of the requested type and
// appends the booking to the ledger. The availability check and the append
// run in one transaction.
func (m *Manager) CreateBooking(ctx context.Context, input *BookInput) (*Booking, error) {
	if err := validateRange(input.CheckIn, input.CheckOut); err != nil {
		return nil, err
	}

	rt, err := m.lookupRoomType(input.RoomType)
	if err != nil {
		return nil, err
	}

	key, withKey := IdempotencyKeyFromContext(ctx)

	var (
		created  Booking
		replayed bool
	)

	err = m.storage.RunInTransaction(ctx, func(ctx context.Context, tx Tx) error {
		if withKey {
			existing, err := tx.BookingByIdempotencyKey(key)
			if err == nil {
				created = existing
				replayed = true

				return nil
			}

			if !errors.Is(err, ErrRecordNotFound) {
				return fmt.Errorf("get booking by idempotency key: %w", err)
			}
		}

		roomNumber, err := FindFreeRoom(tx.Bookings(), rt, input.CheckIn, input.CheckOut)
		if err != nil {
			return err
		}

		id, err := m.idGenerator.GetID(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNextID, err)
		}

		now := m.now().UTC()

		//nolint:exhaustruct // nights and price are derived below
		created = Booking{
			ID:         id,
			GuestName:  input.GuestName,
			CheckIn:    input.CheckIn,
			CheckOut:   input.CheckOut,
			Guests:     input.Guests,
			RoomType:   rt.Name,
			RoomNumber: roomNumber,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		created.derive(rt)

		if err := tx.InsertBooking(created); err != nil {
			return fmt.Errorf("insert booking %v: %w", id, err)
		}

		if withKey {
			tx.BindIdempotencyKey(key, id)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if replayed {
		m.l.LogInfo("Booking #%d returned for repeated idempotency key", created.ID)

		return &created, nil
	}

	m.l.LogInfo("New booking #%d - %s - room %d (%s) - %d", created.ID, created.GuestName, created.RoomNumber, created.RoomType, created.TotalPrice)

	return &created, nil
}

func (m *Manager) ListBookings(ctx context.Context) ([]Booking, error) {
	bookings, err := m.storage.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings from storage: %w", err)
	}

	return bookings, nil
}

// DeleteBooking reports whether a booking with id was removed.
func (m *Manager) DeleteBooking(ctx context.Context, id int) (bool, error) {
	var removed bool

	err := m.storage.RunInTransaction(ctx, func(_ context.Context, tx Tx) error {
		removed = tx.DeleteBooking(id)

		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete booking %d: %w", id, err)
	}

	if removed {
		m.l.LogInfo("Booking deleted: #%d", id)
	}

	return removed, nil
}

// UpdateBooking overwrites every mutable field of booking id and recomputes
// nights and total price. The target room must be free for the new range
// once the booking itself is left out.
func (m *Manager) UpdateBooking(ctx context.Context, id int, input *UpdateInput) (*Booking, error) {
	rt, err := m.validateUpdate(input)
	if err != nil {
		return nil, err
	}

	var updated Booking

	err = m.storage.RunInTransaction(ctx, func(_ context.Context, tx Tx) error {
		bookings := tx.Bookings()

		idx := indexOf(bookings, id)
		if idx < 0 {
			return fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}

		if !isRoomFree(without(bookings, idx), rt.Name, input.RoomNumber, input.CheckIn, input.CheckOut) {
			return &AvailabilityError{
				RoomType:   rt.Name,
				RoomNumber: input.RoomNumber,
				CheckIn:    input.CheckIn,
				CheckOut:   input.CheckOut,
			}
		}

		updated = bookings[idx]
		updated.GuestName = input.GuestName
		updated.CheckIn = input.CheckIn
		updated.CheckOut = input.CheckOut
		updated.Guests = input.Guests
		updated.RoomType = rt.Name
		updated.RoomNumber = input.RoomNumber
		updated.UpdatedAt = m.now().UTC()
		updated.derive(rt)

		return tx.ReplaceBooking(updated)
	})
	if err != nil {
		return nil, err
	}

	m.l.LogInfo("Booking updated: #%d - %s - room %d (%s) - %d", updated.ID, updated.GuestName, updated.RoomNumber, updated.RoomType, updated.TotalPrice)

	return &updated, nil
}

func (m *Manager) validateUpdate(input *UpdateInput) (catalog.RoomType, error) {
	inputErr := newInputError()

	if err := validateRange(input.CheckIn, input.CheckOut); err != nil {
		for field, msgs := range IsInputError(err).Fields() {
			for _, msg := range msgs {
				inputErr.addError(field, msg)
			}
		}
	}

	rt, err := m.catalog.Lookup(input.RoomType)
	if err != nil {
		inputErr.addError("roomType", fmt.Sprintf("unknown room type %q", input.RoomType))
	} else if input.RoomNumber < 1 || input.RoomNumber > rt.TotalRooms {
		inputErr.addError("roomNumber", fmt.Sprintf("roomNumber must be between 1 and %d", rt.TotalRooms))
	}

	if inputErr.fieldsCount() > 0 {
		return catalog.RoomType{}, inputErr
	}

	return rt, nil
}

func (m *Manager) snapshot(ctx context.Context) ([]Booking, error) {
	bookings, err := m.storage.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get ledger snapshot: %w", err)
	}

	return bookings, nil
}

func (m *Manager) FindFreeRoom(ctx context.Context, roomType string, checkIn, checkOut civil.Date) (int, error) {
	rt, err := m.lookupRoomType(roomType)
	if err != nil {
		return 0, err
	}

	bookings, err := m.snapshot(ctx)
	if err != nil {
		return 0, err
	}

	return FindFreeRoom(bookings, rt, checkIn, checkOut)
}

func (m *Manager) HasAnyFreeRoom(ctx context.Context, roomType string, checkIn, checkOut civil.Date) (bool, error) {
	_, err := m.FindFreeRoom(ctx, roomType, checkIn, checkOut)
	if errors.Is(err, ErrNoAvailability) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (m *Manager) IsOccupied(ctx context.Context, roomType string, roomNumber int, date civil.Date) (bool, error) {
	bookings, err := m.snapshot(ctx)
	if err != nil {
		return false, err
	}

	return IsOccupied(bookings, roomType, roomNumber, date), nil
}

func (m *Manager) OccupantName(ctx context.Context, roomType string, roomNumber int, date civil.Date) (string, error) {
	bookings, err := m.snapshot(ctx)
	if err != nil {
		return "", err
	}

	return OccupantName(bookings, roomType, roomNumber, date), nil
}

func (m *Manager) DailyAvailability(ctx context.Context, date civil.Date) ([]RoomAvailability, error) {
	if !date.IsValid() {
		return nil, fmt.Errorf("availability date %v: %w", date, ErrInvalidRange)
	}

	bookings, err := m.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return DailyAvailability(bookings, m.catalog.ListTypes(), date), nil
}

func indexOf(bookings []Booking, id int) int {
	for i := range bookings {
		if bookings[i].ID == id {
			return i
		}
	}

	return -1
}

func without(bookings []Booking, idx int) []Booking {
	out := make([]Booking, 0, len(bookings)-1)
	out = append(out, bookings[:idx]...)

	return append(out, bookings[idx+1:]...)
}

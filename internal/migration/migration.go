package migration

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/logger"
)

type ledger interface {
	CreateBooking(ctx context.Context, input *booking.BookInput) (*booking.Booking, error)
}

type fixture struct {
	Name     string `yaml:"name"`
	CheckIn  string `yaml:"checkIn"`
	CheckOut string `yaml:"checkOut"`
	Guests   string `yaml:"guests"`
	RoomType string `yaml:"roomType"`
}

// Up creates every booking listed in the YAML fixture read from r. Fixtures go
// through the regular create path, so rooms are assigned the same way as for
// live requests. It stops at the first booking that cannot be created;
// bookings created before it are kept and counted in the result.
func Up(ctx context.Context, l *logger.Logger, ledger ledger, r io.Reader) (int, error) {
	var fixtures []fixture

	if err := yaml.NewDecoder(r).Decode(&fixtures); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}

		return 0, fmt.Errorf("decode seed fixture: %w", err)
	}

	for i, f := range fixtures {
		input, err := f.bookInput()
		if err != nil {
			return i, fmt.Errorf("seed booking %d (%s): %w", i, f.Name, err)
		}

		b, err := ledger.CreateBooking(ctx, input)
		if err != nil {
			return i, fmt.Errorf("seed booking %d (%s): %w", i, f.Name, err)
		}

		l.LogDebugf("Seeded booking #%d for %s", b.ID, b.GuestName)
	}

	l.LogInfo("Seed has been applied: %d bookings", len(fixtures))

	return len(fixtures), nil
}

func (f fixture) bookInput() (*booking.BookInput, error) {
	checkIn, err := booking.ParseDate(f.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := booking.ParseDate(f.CheckOut)
	if err != nil {
		return nil, err
	}

	return &booking.BookInput{
		GuestName: f.Name,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    f.Guests,
		RoomType:  f.RoomType,
	}, nil
}

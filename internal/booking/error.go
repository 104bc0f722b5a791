package booking

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRange   = errors.New("invalid date range")
	ErrNoAvailability = errors.New("no availability")

	ErrNextID         = errors.New("get next id from generator")
	ErrLogic          = errors.New("logic error")
	ErrRecordNotFound = errors.New("record not found")
)

type AvailabilityError struct {
	RoomType   string
	RoomNumber int
	CheckIn    civil.Date
	CheckOut   civil.Date
}

func IsAvailabilityError(err error) *AvailabilityError {
	if err == nil {
		return nil
	}

	var availabilityError *AvailabilityError

	if errors.As(err, &availabilityError) {
		return availabilityError
	}

	return nil
}

func (e *AvailabilityError) Error() string {
	if e.RoomNumber > 0 {
		return fmt.Sprintf("room %d of type '%v' is unavailable from %v to %v", e.RoomNumber, e.RoomType, e.CheckIn, e.CheckOut)
	}

	return fmt.Sprintf("no '%v' rooms available from %v to %v", e.RoomType, e.CheckIn, e.CheckOut)
}

func (e *AvailabilityError) Unwrap() error {
	return ErrNoAvailability
}

// InputError collects per-field validation messages. It always matches
// ErrInvalidRange.
type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) fieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%v: %+v", ErrInvalidRange, ie.fields)
}

func (ie *InputError) Unwrap() error {
	return ErrInvalidRange
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidRange)
	}

	return d, nil
}

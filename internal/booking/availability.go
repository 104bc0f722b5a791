package booking

import (
	"cloud.google.com/go/civil"

	"github.com/avstrong/hotel/internal/catalog"
)

// Every function here reads a ledger snapshot and never mutates it. Ranges
// are half-open: a booking holds its room from CheckIn up to, but not
// including, CheckOut.

func occupies(b *Booking, roomType string, roomNumber int, date civil.Date) bool {
	return b.RoomType == roomType &&
		b.RoomNumber == roomNumber &&
		!date.Before(b.CheckIn) &&
		date.Before(b.CheckOut)
}

func occupant(bookings []Booking, roomType string, roomNumber int, date civil.Date) *Booking {
	for i := range bookings {
		if occupies(&bookings[i], roomType, roomNumber, date) {
			return &bookings[i]
		}
	}

	return nil
}

func IsOccupied(bookings []Booking, roomType string, roomNumber int, date civil.Date) bool {
	return occupant(bookings, roomType, roomNumber, date) != nil
}

// OccupantName returns the guest holding the room on date, or "" when the
// room is free. If overlapping bookings exist the earliest in ledger order
// wins.
func OccupantName(bookings []Booking, roomType string, roomNumber int, date civil.Date) string {
	if b := occupant(bookings, roomType, roomNumber, date); b != nil {
		return b.GuestName
	}

	return ""
}

// overlaps reports whether b holds the room on any night of [checkIn, checkOut).
func overlaps(b *Booking, roomType string, roomNumber int, checkIn, checkOut civil.Date) bool {
	return b.RoomType == roomType &&
		b.RoomNumber == roomNumber &&
		b.CheckIn.Before(checkOut) &&
		checkIn.Before(b.CheckOut)
}

func isRoomFree(bookings []Booking, roomType string, roomNumber int, checkIn, checkOut civil.Date) bool {
	for i := range bookings {
		if overlaps(&bookings[i], roomType, roomNumber, checkIn, checkOut) {
			return false
		}
	}

	return true
}

// FindFreeRoom returns the lowest room number of rt that is free on every
// night of [checkIn, checkOut).
func FindFreeRoom(bookings []Booking, rt catalog.RoomType, checkIn, checkOut civil.Date) (int, error) {
	if err := validateRange(checkIn, checkOut); err != nil {
		return 0, err
	}

	for roomNumber := 1; roomNumber <= rt.TotalRooms; roomNumber++ {
		if isRoomFree(bookings, rt.Name, roomNumber, checkIn, checkOut) {
			return roomNumber, nil
		}
	}

	return 0, &AvailabilityError{
		RoomType: rt.Name,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}
}

func HasAnyFreeRoom(bookings []Booking, rt catalog.RoomType, checkIn, checkOut civil.Date) bool {
	_, err := FindFreeRoom(bookings, rt, checkIn, checkOut)

	return err == nil
}

func DailyAvailability(bookings []Booking, types []catalog.RoomType, date civil.Date) []RoomAvailability {
	out := make([]RoomAvailability, 0, len(types))

	for _, rt := range types {
		slots := make([]RoomSlot, 0, rt.TotalRooms)

		for roomNumber := 1; roomNumber <= rt.TotalRooms; roomNumber++ {
			slot := RoomSlot{RoomNumber: roomNumber} //nolint:exhaustruct

			if b := occupant(bookings, rt.Name, roomNumber, date); b != nil {
				slot.IsBooked = true
				slot.GuestName = b.GuestName
			}

			slots = append(slots, slot)
		}

		out = append(out, RoomAvailability{
			RoomType:   rt.Name,
			TotalRooms: rt.TotalRooms,
			Price:      rt.PricePerNight,
			Slots:      slots,
		})
	}

	return out
}

func validateRange(checkIn, checkOut civil.Date) error {
	inputErr := newInputError()

	if !checkIn.IsValid() {
		inputErr.addError("checkIn", "provide a valid checkIn date")
	}

	if !checkOut.IsValid() {
		inputErr.addError("checkOut", "provide a valid checkOut date")
	}

	if inputErr.fieldsCount() == 0 && !checkOut.After(checkIn) {
		inputErr.addError("checkOut", "checkOut must be after checkIn")
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

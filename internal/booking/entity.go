package booking

import (
	"time"

	"cloud.google.com/go/civil"
)

type Booking struct {
	ID         int        `json:"bookingId"`
	GuestName  string     `json:"name"`
	CheckIn    civil.Date `json:"checkIn"`
	CheckOut   civil.Date `json:"checkOut"`
	Guests     string     `json:"guests"`
	RoomType   string     `json:"roomType"`
	RoomNumber int        `json:"roomNumber"`
	Nights     int        `json:"nights"`
	TotalPrice int        `json:"totalPrice"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// RoomSlot is the occupancy of one room on one date.
type RoomSlot struct {
	RoomNumber int    `json:"roomNumber"`
	IsBooked   bool   `json:"isBooked"`
	GuestName  string `json:"guestName"`
}

type RoomAvailability struct {
	RoomType   string     `json:"roomType"`
	TotalRooms int        `json:"totalRooms"`
	Price      int        `json:"price"`
	Slots      []RoomSlot `json:"slots"`
}

type BookInput struct {
	GuestName string
	CheckIn   civil.Date
	CheckOut  civil.Date
	Guests    string
	RoomType  string
}

type UpdateInput struct {
	GuestName  string
	CheckIn    civil.Date
	CheckOut   civil.Date
	Guests     string
	RoomType   string
	RoomNumber int
}

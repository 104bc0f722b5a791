package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
)

type statusResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

type bookingResponse struct {
	Success bool `json:"success"`
	booking.Booking
}

type roomResponse struct {
	ID int `json:"id"`
	catalog.RoomType
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if inputErr := booking.IsInputError(err); inputErr != nil {
		s.writeJSON(w, http.StatusBadRequest, statusResponse{
			Message: "Invalid booking details",
			Fields:  inputErr.Fields(),
		})

		return
	}

	switch {
	case errors.Is(err, booking.ErrInvalidRange), errors.Is(err, errBadNumber):
		s.writeJSON(w, http.StatusBadRequest, statusResponse{Message: err.Error()}) //nolint:exhaustruct
	case errors.Is(err, booking.ErrNoAvailability):
		s.writeJSON(w, http.StatusConflict, statusResponse{Message: "No rooms available for selected dates"}) //nolint:exhaustruct
	case errors.Is(err, booking.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, statusResponse{Message: err.Error()}) //nolint:exhaustruct
	default:
		s.l.LogErrorf("Could not handle %s %s (requestID %s): %v", r.Method, r.URL.Path, requestIDFromContext(r.Context()), err.Error())
		s.writeJSON(w, http.StatusInternalServerError, statusResponse{Message: http.StatusText(http.StatusInternalServerError)}) //nolint:exhaustruct
	}
}

func formInt(r *http.Request, field string) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue(field))

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q %w", field, raw, errBadNumber)
	}

	return n, nil
}

func formDates(r *http.Request) (civil.Date, civil.Date, error) {
	checkIn, err := booking.ParseDate(strings.TrimSpace(r.PostFormValue("checkin")))
	if err != nil {
		return civil.Date{}, civil.Date{}, fmt.Errorf("checkin: %w", err)
	}

	checkOut, err := booking.ParseDate(strings.TrimSpace(r.PostFormValue("checkout")))
	if err != nil {
		return civil.Date{}, civil.Date{}, fmt.Errorf("checkout: %w", err)
	}

	return checkIn, checkOut, nil
}

func (s *Server) roomsHandler(w http.ResponseWriter, _ *http.Request) {
	types := s.bManager.RoomTypes()
	out := make([]roomResponse, 0, len(types))

	for i, rt := range types {
		out = append(out, roomResponse{ID: i + 1, RoomType: rt})
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	checkIn, checkOut, err := formDates(r)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	input := &booking.BookInput{
		GuestName: strings.TrimSpace(r.PostFormValue("name")),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    strings.TrimSpace(r.PostFormValue("guests")),
		RoomType:  strings.TrimSpace(r.PostFormValue("roomType")),
	}

	ctx := r.Context()
	if key := r.Header.Get(idempotencyKeyHeader); key != "" {
		ctx = booking.NewContextWithIdempotencyKey(ctx, key)
	}

	out, err := s.bManager.CreateBooking(ctx, input)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.writeJSON(w, http.StatusCreated, bookingResponse{Success: true, Booking: *out})
}

func (s *Server) listBookingsHandler(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bManager.ListBookings(r.Context())
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) deleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := formInt(r, "bookingId")
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	removed, err := s.bManager.DeleteBooking(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	if !removed {
		s.writeJSON(w, http.StatusNotFound, statusResponse{Message: "Booking not found"}) //nolint:exhaustruct

		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Booking deleted successfully"}) //nolint:exhaustruct
}

func (s *Server) updateBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := formInt(r, "bookingId")
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	roomNumber, err := formInt(r, "roomNumber")
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	checkIn, checkOut, err := formDates(r)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	out, err := s.bManager.UpdateBooking(r.Context(), id, &booking.UpdateInput{
		GuestName:  strings.TrimSpace(r.PostFormValue("name")),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     strings.TrimSpace(r.PostFormValue("guests")),
		RoomType:   strings.TrimSpace(r.PostFormValue("roomType")),
		RoomNumber: roomNumber,
	})
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.writeJSON(w, http.StatusOK, bookingResponse{Success: true, Booking: *out})
}

func (s *Server) availabilityHandler(w http.ResponseWriter, r *http.Request) {
	date := civil.DateOf(s.now())

	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		var err error

		date, err = booking.ParseDate(raw)
		if err != nil {
			s.writeError(w, r, err)

			return
		}
	}

	out, err := s.bManager.DailyAvailability(r.Context(), date)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))

	if err := s.staff.Check(username, r.PostFormValue("password")); err != nil {
		s.l.LogWarnf("Rejected staff login for %q", username)
		s.writeJSON(w, http.StatusUnauthorized, statusResponse{Message: "Invalid credentials"}) //nolint:exhaustruct

		return
	}

	s.l.LogInfo("Staff login: %s", username)
	s.writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Login successful"}) //nolint:exhaustruct
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *http.ServeMux) {
	handle := func(pattern string, h http.HandlerFunc) {
		r.Handle(pattern, s.applyMiddlewares(h, s.loggerMiddleware(), s.recoverMiddleware(), s.requestIDMiddleware(), s.traceContextMiddleware()))
	}

	handle("GET /api/rooms", s.roomsHandler)
	handle("GET /api/rooms/availability", s.availabilityHandler)
	handle("POST /api/book", s.createBookingHandler)
	handle("GET /api/bookings", s.listBookingsHandler)
	handle("POST /api/bookings/delete", s.deleteBookingHandler)
	handle("POST /api/bookings/update", s.updateBookingHandler)
	handle("POST /api/login", s.loginHandler)
	handle(fmt.Sprintf("GET %s", s.conf.LivenessEndpoint), s.livenessHandler)

	if s.conf.StaticDir != "" {
		handle("GET /", http.FileServer(http.Dir(s.conf.StaticDir)).ServeHTTP)
	}
}

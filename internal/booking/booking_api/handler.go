package booking_api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"booking-desk/internal/booking"
	"booking-desk/internal/logger"
	"booking-desk/internal/models"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, date string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	DeleteBooking(ctx context.Context, date string) (bool, error)
}

type Handler struct {
	Service BookingService
	Log     *logger.Logger
}

// ListBookings handles GET /api/bookings.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListBookings(r.Context())
	if err != nil {
		h.Log.Error("API", fmt.Sprintf("list bookings: %v", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

// CreateBooking handles POST /api/bookings. Error kinds are inspected
// structurally to pick the status code; internal storage errors are
// never echoed to the client.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Service.CreateBooking(r.Context(), req)
	if err != nil {
		var alreadyBooked *booking.AlreadyBookedError
		switch {
		case errors.Is(err, booking.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		case errors.As(err, &alreadyBooked):
			writeError(w, http.StatusConflict, fmt.Sprintf("Date %s is already booked", alreadyBooked.Date))
		default:
			h.Log.Error("API", fmt.Sprintf("create booking: %v", err))
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetBooking handles GET /api/bookings/{date}.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	found, err := h.Service.GetBooking(r.Context(), date)
	if err != nil {
		h.Log.Error("API", fmt.Sprintf("get booking %s: %v", date, err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if found == nil {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	}

	writeJSON(w, http.StatusOK, found)
}

// DeleteBooking handles DELETE /api/bookings/{date}. Removing an absent
// date answers 404; the ledger itself treats it as a normal no-op.
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	removed, err := h.Service.DeleteBooking(r.Context(), date)
	if err != nil {
		h.Log.Error("API", fmt.Sprintf("delete booking %s: %v", date, err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

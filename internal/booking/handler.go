package booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dan-burt/padelbook1/internal/api"
	"github.com/dan-burt/padelbook1/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// DayErrorResponse carries the blank day the form falls back to when a
// date cannot be loaded.
type DayErrorResponse struct {
	Error string `json:"error" example:"failed to load day"`
	Day   *Day   `json:"day"`
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	var failure SlotFailure
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: ErrValidation.Error(), Details: verr.Problems})
	case errors.Is(err, ErrPlayerNotBooked):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrRemindersDisabled):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
	case errors.As(err, &failure):
		logger.Error(fallback, "op", failure.Op, "slot", failure.Slot, "error", failure.Err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback, Details: []string{failure.Message}})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

// @Summary      Quote fees
// @Description  Recomputes every named player's share for a form state. Nothing is stored.
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        request body booking.QuoteRequest true "Form state"
// @Success      200 {object} booking.Quote
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /fees/quote [post]
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to quote fees")
		return
	}

	c.JSON(http.StatusOK, quote)
}

// @Summary      Load a day
// @Description  Courts, slots and roster of a date. A failed load answers 503 with the blank day.
// @Tags         days
// @Produce      json
// @Param        date path string true "Date (YYYY-MM-DD)"
// @Success      200 {object} booking.Day
// @Failure      400 {object} api.ErrorResponse
// @Failure      503 {object} booking.DayErrorResponse
// @Router       /days/{date} [get]
func (h *Handler) GetDay(c *gin.Context) {
	date := c.Param("date")

	day, err := h.service.LoadDay(c.Request.Context(), date)
	if errors.Is(err, ErrLoadFailure) {
		logger.Error("Failed to load day", "date", date, "error", err)
		c.JSON(http.StatusServiceUnavailable, DayErrorResponse{Error: ErrLoadFailure.Error(), Day: BlankDay(date)})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to load day")
		return
	}

	c.JSON(http.StatusOK, day)
}

// @Summary      Save a day
// @Description  Reconciles the form state into bookings. Per-slot failures are listed in the result.
// @Tags         days
// @Accept       json
// @Produce      json
// @Param        date    path string              true "Date (YYYY-MM-DD)"
// @Param        request body booking.SaveRequest true "Form state"
// @Success      200 {object} booking.SaveResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /days/{date} [put]
func (h *Handler) SaveDay(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	result, err := h.service.Save(c.Request.Context(), c.Param("date"), req)
	if err != nil {
		h.respondError(c, err, "Failed to save day")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Delete a day
// @Description  Deletes the bookings of a date with their players, optionally only some slots.
// @Tags         days
// @Produce      json
// @Param        date  path  string true  "Date (YYYY-MM-DD)"
// @Param        slots query string false "Comma separated start times, e.g. 07:00,08:00"
// @Success      200 {object} booking.DeleteResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /days/{date} [delete]
func (h *Handler) DeleteDay(c *gin.Context) {
	var slots []string
	if raw := c.Query("slots"); raw != "" {
		slots = strings.Split(raw, ",")
	}

	result, err := h.service.DeleteDay(c.Request.Context(), c.Param("date"), slots)
	if err != nil {
		h.respondError(c, err, "Failed to delete day")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Remove a player from a day
// @Description  Removes the player from every booking of the date. Other dates are untouched.
// @Tags         days
// @Produce      json
// @Param        date     path string true "Date (YYYY-MM-DD)"
// @Param        playerID path int    true "Player ID"
// @Success      200 {object} booking.RemoveResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /days/{date}/players/{playerID} [delete]
func (h *Handler) RemovePlayer(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("playerID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid player ID"})
		return
	}

	result, err := h.service.RemovePlayer(c.Request.Context(), c.Param("date"), playerID)
	if err != nil {
		h.respondError(c, err, "Failed to remove player")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Queue fee reminders
// @Description  Emails every unpaid player of the date that has an address on file.
// @Tags         days
// @Produce      json
// @Param        date path string true "Date (YYYY-MM-DD)"
// @Success      202 {object} booking.ReminderResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      503 {object} api.ErrorResponse
// @Router       /days/{date}/reminders [post]
func (h *Handler) SendReminders(c *gin.Context) {
	result, err := h.service.SendReminders(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.respondError(c, err, "Failed to queue reminders")
		return
	}

	c.JSON(http.StatusAccepted, result)
}

// @Summary      Booked dates of a month
// @Description  Dates with at least one booking, for calendar highlighting.
// @Tags         calendar
// @Produce      json
// @Param        year  path int true "Year"
// @Param        month path int true "Month (1-12)"
// @Success      200 {array} string
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /calendar/{year}/{month} [get]
func (h *Handler) Calendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid month"})
		return
	}

	dates, err := h.service.BookedDates(c.Request.Context(), year, month)
	if err != nil {
		h.respondError(c, err, "Failed to load calendar")
		return
	}

	c.JSON(http.StatusOK, dates)
}

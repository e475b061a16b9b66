package handler

import (
	"encoding/json"
	"net/http"

	"doctor-booking-api/internal/delivery/dto"
	"doctor-booking-api/internal/delivery/http/middleware"
	"doctor-booking-api/internal/usecase"
	"doctor-booking-api/pkg/response"
	"doctor-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TimeSlotHandler struct {
	timeSlotUsecase usecase.TimeSlotUsecase
	validator       *validator.CustomValidator
}

func NewTimeSlotHandler(timeSlotUsecase usecase.TimeSlotUsecase, validator *validator.CustomValidator) *TimeSlotHandler {
	return &TimeSlotHandler{
		timeSlotUsecase: timeSlotUsecase,
		validator:       validator,
	}
}

// List handles listing the calling doctor's slots
// @Summary List time slots
// @Description List the calling doctor's time slots; non-doctors get an empty list
// @Tags TimeSlots
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /time-slots [get]
func (h *TimeSlotHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	slots, err := h.timeSlotUsecase.List(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list time slots")
		return
	}

	response.Success(w, http.StatusOK, "Time slots retrieved successfully", slots)
}

// GetByID handles retrieving a single slot
// @Summary Get time slot
// @Description Get one of the calling doctor's time slots by ID
// @Tags TimeSlots
// @Security BearerAuth
// @Produce json
// @Param id path string true "Time Slot ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /time-slots/{id} [get]
func (h *TimeSlotHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid time slot ID", nil)
		return
	}

	slot, err := h.timeSlotUsecase.GetByID(r.Context(), userID, id)
	if err != nil {
		switch err {
		case usecase.ErrTimeSlotNotFound:
			response.NotFound(w, "Time slot not found")
		default:
			response.InternalServerError(w, "Failed to get time slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time slot retrieved successfully", slot)
}

// Create handles publishing a slot
// @Summary Create time slot
// @Description Create a bookable slot owned by the calling doctor
// @Tags TimeSlots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTimeSlotRequest true "Create Time Slot Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /time-slots [post]
func (h *TimeSlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.timeSlotUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeTimeSlotError(w, err, "Failed to create time slot")
		return
	}

	response.Success(w, http.StatusCreated, "Time slot created successfully", slot)
}

// Update handles editing a slot
// @Summary Update time slot
// @Description Update one of the calling doctor's time slots
// @Tags TimeSlots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Time Slot ID"
// @Param request body dto.UpdateTimeSlotRequest true "Update Time Slot Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /time-slots/{id} [put]
func (h *TimeSlotHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid time slot ID", nil)
		return
	}

	var req dto.UpdateTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.timeSlotUsecase.Update(r.Context(), userID, id, &req)
	if err != nil {
		h.writeTimeSlotError(w, err, "Failed to update time slot")
		return
	}

	response.Success(w, http.StatusOK, "Time slot updated successfully", slot)
}

// Delete handles removing a slot
// @Summary Delete time slot
// @Description Delete one of the calling doctor's time slots
// @Tags TimeSlots
// @Security BearerAuth
// @Produce json
// @Param id path string true "Time Slot ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /time-slots/{id} [delete]
func (h *TimeSlotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid time slot ID", nil)
		return
	}

	if err := h.timeSlotUsecase.Delete(r.Context(), userID, id); err != nil {
		switch err {
		case usecase.ErrTimeSlotNotFound:
			response.NotFound(w, "Time slot not found")
		default:
			response.InternalServerError(w, "Failed to delete time slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time slot deleted successfully", nil)
}

func (h *TimeSlotHandler) writeTimeSlotError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrTimeSlotNotFound:
		response.NotFound(w, "Time slot not found")
	case usecase.ErrPermissionDenied:
		response.Forbidden(w, "Only doctors can manage time slots")
	case usecase.ErrDuplicateTimeSlot:
		response.Error(w, http.StatusConflict, err.Error(), nil)
	case usecase.ErrInvalidDate, usecase.ErrInvalidTimeRange:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

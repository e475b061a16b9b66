package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"doctor-booking-api/internal/delivery/dto"
	"doctor-booking-api/internal/usecase"
	"doctor-booking-api/pkg/response"
	"doctor-booking-api/pkg/validator"

	"github.com/gorilla/mux"
)

type SpecialtyHandler struct {
	specialtyUsecase usecase.SpecialtyUsecase
	validator        *validator.CustomValidator
}

func NewSpecialtyHandler(specialtyUsecase usecase.SpecialtyUsecase, validator *validator.CustomValidator) *SpecialtyHandler {
	return &SpecialtyHandler{
		specialtyUsecase: specialtyUsecase,
		validator:        validator,
	}
}

// List handles the public specialty catalog
// @Summary List specialties
// @Description List medical specialties
// @Tags Specialties
// @Produce json
// @Success 200 {object} response.Response
// @Router /specialties [get]
func (h *SpecialtyHandler) List(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.specialtyUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

// Create handles adding a specialty
// @Summary Create specialty
// @Description Add a medical specialty (admin only)
// @Tags Specialties
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSpecialtyRequest true "Create Specialty Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/specialties [post]
func (h *SpecialtyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyAlreadyExists:
			response.Error(w, http.StatusConflict, "Specialty already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create specialty")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Specialty created successfully", specialty)
}

// Delete handles removing a specialty
// @Summary Delete specialty
// @Description Remove a medical specialty (admin only)
// @Tags Specialties
// @Security BearerAuth
// @Produce json
// @Param id path int true "Specialty ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/specialties/{id} [delete]
func (h *SpecialtyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty ID", nil)
		return
	}

	if err := h.specialtyUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		default:
			response.InternalServerError(w, "Failed to delete specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty deleted successfully", nil)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/ruralpay/cashcard/internal/middleware"
	"github.com/ruralpay/cashcard/internal/models"
	"github.com/ruralpay/cashcard/internal/services"
)

type CashCardHandler struct {
	service   *services.CashCardService
	validator *services.ValidationHelper
	log       zerolog.Logger
	basePath  string
}

// NewCashCardHandler serves cash cards under basePath, e.g. "/cashcards".
func NewCashCardHandler(service *services.CashCardService, log zerolog.Logger, basePath string) *CashCardHandler {
	return &CashCardHandler{
		service:   service,
		validator: services.NewValidationHelper(),
		log:       log.With().Str("handler", "cashcards").Logger(),
		basePath:  basePath,
	}
}

// RegisterRoutes registers the resource routes on r. Authentication and the
// role check are the caller's middleware.
func (h *CashCardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", middleware.WithIdentity(h.FindAll))
	r.Post("/", middleware.WithIdentity(h.Create))
	r.Get("/{id}", middleware.WithIdentity(h.FindByID))
	r.Put("/{id}", middleware.WithIdentity(h.Update))
	r.Delete("/{id}", middleware.WithIdentity(h.Delete))
}

// FindByID returns one of the caller's cash cards
// @Summary Get a cash card
// @Description Returns the cash card if it belongs to the caller
// @Tags cashcards
// @Produce json
// @Security BasicAuth
// @Param id path int true "Cash card ID"
// @Success 200 {object} models.CashCard
// @Failure 401 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /cashcards/{id} [get]
func (h *CashCardHandler) FindByID(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	card, err := h.service.FindByID(r.Context(), caller, id)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, card)
}

// FindAll lists the caller's cash cards
// @Summary List cash cards
// @Description Returns one page of the caller's cash cards, largest amount first unless sort is given
// @Tags cashcards
// @Produce json
// @Security BasicAuth
// @Param page query int false "Zero-based page number (default: 0)"
// @Param size query int false "Page size (default: 20, max: 2000)"
// @Param sort query string false "field[,asc|desc]; may repeat"
// @Success 200 {array} models.CashCard
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /cashcards [get]
func (h *CashCardHandler) FindAll(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	page, err := services.ParsePageRequest(r.URL.Query())
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	cards, err := h.service.FindAll(r.Context(), caller, page)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, cards)
}

// Create stores a new cash card owned by the caller
// @Summary Create a cash card
// @Description Creates a cash card for the caller; id and owner in the body are ignored
// @Tags cashcards
// @Accept json
// @Security BasicAuth
// @Param card body models.CashCardRequest true "Cash card"
// @Success 201 {string} string "Location header points to the new card"
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /cashcards [post]
func (h *CashCardHandler) Create(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	card, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	w.Header().Set("Location", h.basePath+"/"+strconv.FormatInt(card.ID, 10))
	w.WriteHeader(http.StatusCreated)
}

// Update replaces the amount of one of the caller's cash cards
// @Summary Update a cash card
// @Tags cashcards
// @Accept json
// @Security BasicAuth
// @Param id path int true "Cash card ID"
// @Param card body models.CashCardRequest true "Cash card"
// @Success 204
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /cashcards/{id} [put]
func (h *CashCardHandler) Update(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), caller, id, req); err != nil {
		h.sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes one of the caller's cash cards
// @Summary Delete a cash card
// @Tags cashcards
// @Security BasicAuth
// @Param id path int true "Cash card ID"
// @Success 204
// @Failure 404 {object} services.ErrorResponse
// @Router /cashcards/{id} [delete]
func (h *CashCardHandler) Delete(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		h.sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CashCardHandler) cardID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		services.SendErrorResponse(w, "Invalid cash card id", http.StatusBadRequest, nil)
		return 0, false
	}
	return id, true
}

func (h *CashCardHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (models.CashCardRequest, bool) {
	var req models.CashCardRequest
	if err := services.DecodeJSON(w, r, &req); err != nil {
		msg := "Invalid request body"
		if errors.Is(err, services.ErrMultipleJSON) {
			msg = "Request body must only contain a single JSON object"
		}
		services.SendErrorResponse(w, msg, http.StatusBadRequest, nil)
		return req, false
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return req, false
	}
	return req, true
}

func (h *CashCardHandler) sendServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCashCardNotFound):
		services.SendErrorResponse(w, "Cash card not found", http.StatusNotFound, nil)
	case errors.Is(err, services.ErrInvalidBody):
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
	default:
		h.log.Error().Err(err).Msg("cash card request failed")
		services.SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
	}
}

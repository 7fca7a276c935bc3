package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/ruralpay/cashcard/internal/middleware"
	"github.com/ruralpay/cashcard/internal/models"
	"github.com/ruralpay/cashcard/internal/services"
)

type AuthHandler struct {
	tokens *services.TokenService
	log    zerolog.Logger
}

func NewAuthHandler(tokens *services.TokenService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		log:    log.With().Str("handler", "auth").Logger(),
	}
}

// IssueToken exchanges the caller's credentials for a bearer token
// @Summary Issue a bearer token
// @Description Authenticated with Basic credentials, returns a signed bearer token
// @Tags auth
// @Produce json
// @Security BasicAuth
// @Success 200 {object} services.IssuedToken
// @Failure 401 {object} services.ErrorResponse
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	issued, err := h.tokens.Issue(caller)
	if err != nil {
		h.log.Error().Err(err).Str("username", caller.Username).Msg("token issue failed")
		services.SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}
	services.SendJSON(w, http.StatusOK, issued)
}

// Logout revokes the bearer token used on this request
// @Summary Revoke a bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Logout successful"
// @Failure 400 {object} services.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		services.SendErrorResponse(w, "Bearer token required", http.StatusBadRequest, nil)
		return
	}

	if err := h.tokens.Revoke(r.Context(), token); err != nil {
		h.log.Error().Err(err).Str("username", caller.Username).Msg("token revoke failed")
		services.SendErrorResponse(w, "Failed to revoke token", http.StatusInternalServerError, nil)
		return
	}
	services.SendJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

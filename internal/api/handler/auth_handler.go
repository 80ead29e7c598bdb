package handler

import (
	"net/http"

	"inkwell/internal/api/middleware"
	"inkwell/internal/app/service"
	"inkwell/internal/common"
)

// authPayload is the register/login envelope; unlike the generic data
// envelope it carries the token at the top level.
type authPayload struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	Data   authData `json:"data"`
}

type authData struct {
	User service.AuthUser `json:"user"`
}

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, authPayload{
		Status: "success",
		Token:  res.Token,
		Data:   authData{User: res.User},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, authPayload{
		Status: "success",
		Token:  res.Token,
		Data:   authData{User: res.User},
	})
}

// Me returns the authenticated user's own profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		common.RespondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.auth.Profile(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, map[string]interface{}{"user": profile})
}

package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cs-Nikhil/msdproject/internal/auth"
	"github.com/cs-Nikhil/msdproject/internal/middleware"
	"github.com/cs-Nikhil/msdproject/internal/model"
)

const refreshTokenTTL = 7 * 24 * time.Hour

type registerRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Phone          string `json:"phone"`
	Role           string `json:"role" validate:"required,oneof=patient doctor"`
	Specialization string `json:"specialization" validate:"required_if=Role doctor"`
	Experience     int    `json:"experience" validate:"gte=0"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	role, _ := model.ParseRole(req.Role)

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         role,
		PasswordHash: hash,
	}
	if role == model.RoleDoctor {
		u.Specialization = req.Specialization
		u.Experience = req.Experience
	}

	if err := h.store.CreateUser(r.Context(), u); err != nil {
		// unique violation = dup email, but don't reveal that
		writeMessage(w, http.StatusConflict, "registration failed")
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"role":  u.Role,
		"token": tok,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	rawRefresh, tokenHash, err := auth.GenerateRefreshToken()
	if err == nil {
		if _, err := h.store.CreateRefreshToken(r.Context(), u.ID, tokenHash, time.Now().Add(refreshTokenTTL)); err == nil {
			setAuthCookies(w, tok, rawRefresh)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"role":  u.Role,
		"token": tok,
	})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.Identity(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not authorized")
		return
	}
	u, err := h.store.UserByID(r.Context(), id.UserID)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Refresh rotates the refresh-token cookie and issues a new access token.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("refresh_token")
	if err != nil || c.Value == "" {
		writeMessage(w, http.StatusUnauthorized, "no refresh token")
		return
	}

	rt, err := h.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		writeMessage(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	u, err := h.store.UserByID(r.Context(), rt.UserID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	rawRefresh, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, u.ID, newHash, time.Now().Add(refreshTokenTTL)); err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	setAuthCookies(w, tok, rawRefresh)
	writeJSON(w, http.StatusOK, map[string]any{"token": tok})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := middleware.Identity(r.Context()); ok {
		_ = h.store.RevokeAllRefreshTokens(r.Context(), id.UserID)
	}
	clearAuthCookies(w)
	writeMessage(w, http.StatusOK, "logged out")
}

func setAuthCookies(w http.ResponseWriter, accessTok, rawRefresh string) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: accessTok, HttpOnly: true, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: rawRefresh, HttpOnly: true, Path: "/api/auth/"})
}

func clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", HttpOnly: true, Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "", HttpOnly: true, Path: "/api/auth/", MaxAge: -1})
}

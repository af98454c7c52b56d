package handler

import (
	"net/http"

	"storefront-api/models"
	"storefront-api/service"
)

type registerReq struct {
	Username string     `json:"username" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=user seller"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !h.decodeJSON(w, r, &req) {
		return
	}

	_, err := h.svc.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.writeErr(w, r, err, "Error registering user")
		return
	}
	writeMessage(w, http.StatusCreated, "Registration Successful")
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !h.decodeJSON(w, r, &req) {
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeErr(w, r, err, "Error logging in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login Successful", "token": token})
}

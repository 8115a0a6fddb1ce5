package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"mckart-backend/apperr"
	"mckart-backend/usecase"
)

type UserController struct {
	users *usecase.UserUsecase
	log   *zap.Logger
}

func NewUserController(users *usecase.UserUsecase, log *zap.Logger) *UserController {
	return &UserController{users: users, log: log}
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register gets or creates a user; repeat registration with the same
// email acts as login.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, c.log, apperr.Validation("invalid JSON body"))
		return
	}

	user, err := c.users.Register(r.Context(), req.Name, req.Email, req.Role)
	if err != nil {
		writeError(w, c.log, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

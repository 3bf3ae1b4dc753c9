package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/foodshare/foodshare-api/internal/model"
	"github.com/foodshare/foodshare-api/internal/payload"
	"github.com/foodshare/foodshare-api/internal/usecase"
	"github.com/foodshare/foodshare-api/internal/validation"
)

// AuthHandler exposes registration and login over HTTP.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, "invalid request body")
		return
	}

	if fields := h.validator.Validate(req); fields != nil {
		respondValidationError(w, fields)
		return
	}

	_, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
		Address:  req.Address,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserAlreadyExists) {
			respondError(w, http.StatusConflict, CodeDuplicateAccount, "an account with this email already exists")
			return
		}

		h.logger.Error().Err(err).Msg("failed to register account")
		respondError(w, http.StatusInternalServerError, CodeInternal, "something went wrong")
		return
	}

	respondJSON(w, http.StatusCreated, payload.RegisterResponse{Message: "registered successfully"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, "invalid request body")
		return
	}

	if fields := h.validator.Validate(req); fields != nil {
		respondValidationError(w, fields)
		return
	}

	token, user, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			respondError(w, http.StatusNotFound, CodeNotFound, "account not found")
		case errors.Is(err, usecase.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, CodeInvalidCredentials, "invalid credentials")
		default:
			h.logger.Error().Err(err).Msg("failed to log in")
			respondError(w, http.StatusInternalServerError, CodeInternal, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.LoginResponse{Token: token, User: user})
}

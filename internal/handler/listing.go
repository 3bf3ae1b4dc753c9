package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form"
	"github.com/rs/zerolog"

	"github.com/foodshare/foodshare-api/internal/model"
	"github.com/foodshare/foodshare-api/internal/payload"
	"github.com/foodshare/foodshare-api/internal/usecase"
	"github.com/foodshare/foodshare-api/internal/validation"
)

// ListingHandler exposes listing creation, querying and claiming over HTTP.
type ListingHandler struct {
	listingUsecase usecase.ListingUsecase
	validator      *validation.Validator
	formDecoder    *form.Decoder
	logger         *zerolog.Logger
}

func NewListingHandler(
	listingUsecase usecase.ListingUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *ListingHandler {
	return &ListingHandler{
		listingUsecase: listingUsecase,
		validator:      validator,
		formDecoder:    form.NewDecoder(),
		logger:         logger,
	}
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}

	var req payload.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, "invalid request body")
		return
	}

	if fields := h.validator.Validate(req); fields != nil {
		respondValidationError(w, fields)
		return
	}

	// The persisted donor reference always comes from the token; a body
	// donorId that names someone else is an ownership violation.
	if req.DonorID != "" && req.DonorID != claims.UserID {
		respondError(w, http.StatusForbidden, CodeForbidden, "cannot create a listing for another donor")
		return
	}

	listing, err := h.listingUsecase.Create(r.Context(), usecase.CreateListingParams{
		DonorID:    claims.UserID,
		FoodName:   req.FoodName,
		Quantity:   req.Quantity,
		ExpiryTime: req.ExpiryTime,
		PickupTime: req.PickupTime,
		Location: model.Location{
			Address: req.Location.Address,
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
		},
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTimeWindow) {
			respondValidationError(w, map[string]string{
				"expiryTime": "expiry time must not precede pickup time",
			})
			return
		}

		h.logger.Error().Err(err).Msg("failed to create listing")
		respondError(w, http.StatusInternalServerError, CodeInternal, "something went wrong")
		return
	}

	respondJSON(w, http.StatusCreated, listing)
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	var query payload.ListListingsQuery
	if err := h.formDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidationError, "invalid query parameters")
		return
	}

	if fields := h.validator.Validate(query); fields != nil {
		respondValidationError(w, fields)
		return
	}

	// An unscoped query returns the available listings; a donor-scoped
	// query returns that donor's listings in every state unless narrowed.
	if query.DonorID == "" && query.Status == "" {
		query.Status = string(model.StatusAvailable)
	}

	listings, err := h.listingUsecase.List(r.Context(), usecase.ListListingsParams{
		DonorID: query.DonorID,
		Status:  model.ListingStatus(query.Status),
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list listings")
		respondError(w, http.StatusInternalServerError, CodeInternal, "something went wrong")
		return
	}

	if listings == nil {
		listings = []*model.Listing{}
	}

	respondJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) Claim(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}

	var req payload.ClaimListingRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, CodeValidationError, "invalid request body")
			return
		}
	}

	// The claimant is the authenticated account; a body ngoId that names
	// someone else is an ownership violation.
	if req.NgoID != "" && req.NgoID != claims.UserID {
		respondError(w, http.StatusForbidden, CodeForbidden, "cannot claim a listing for another account")
		return
	}

	listingID := chi.URLParam(r, "id")

	listing, err := h.listingUsecase.Claim(r.Context(), listingID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrListingNotFound):
			respondError(w, http.StatusNotFound, CodeNotFound, "listing not found")
		case errors.Is(err, usecase.ErrListingNotAvailable):
			respondError(w, http.StatusBadRequest, CodeInvalidState, "this listing is not available to claim")
		default:
			h.logger.Error().Err(err).Msg("failed to claim listing")
			respondError(w, http.StatusInternalServerError, CodeInternal, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.ClaimListingResponse{
		Message: "listing successfully claimed",
		Listing: listing,
	})
}

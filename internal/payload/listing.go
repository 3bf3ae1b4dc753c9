package payload

import (
	"time"

	"github.com/foodshare/foodshare-api/internal/model"
)

type LocationPayload struct {
	Address string  `json:"address" validate:"required"`
	Lat     float64 `json:"lat"     validate:"min=-90,max=90"`
	Lng     float64 `json:"lng"     validate:"min=-180,max=180"`
}

type CreateListingRequest struct {
	// DonorID is optional; when present it must match the authenticated
	// donor. The persisted donor reference always comes from the token.
	DonorID    string          `json:"donorId"`
	FoodName   string          `json:"foodName"   validate:"required"`
	Quantity   string          `json:"quantity"   validate:"required"`
	ExpiryTime time.Time       `json:"expiryTime" validate:"required"`
	PickupTime time.Time       `json:"pickupTime" validate:"required"`
	Location   LocationPayload `json:"location"`
}

// ListListingsQuery is decoded from URL query parameters.
type ListListingsQuery struct {
	DonorID string `form:"donor_id"`
	Status  string `form:"status" validate:"omitempty,oneof=available requested claimed accepted completed"`
}

type ClaimListingRequest struct {
	// NgoID is optional; when present it must match the authenticated NGO.
	NgoID string `json:"ngoId"`
}

type ClaimListingResponse struct {
	Message string         `json:"message"`
	Listing *model.Listing `json:"listing"`
}

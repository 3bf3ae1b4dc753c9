package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/foodshare/foodshare-api/internal/model"
	"github.com/foodshare/foodshare-api/internal/repository"
)

// ListingUsecase defines the interface for listing-related use cases.
type ListingUsecase interface {
	Create(ctx context.Context, params CreateListingParams) (*model.Listing, error)
	List(ctx context.Context, params ListListingsParams) ([]*model.Listing, error)
	Claim(ctx context.Context, listingID, claimantID string) (*model.Listing, error)
}

// CreateListingParams defines the parameters for creating a listing. DonorID
// is the authenticated donor's account id, never a caller-supplied value.
type CreateListingParams struct {
	DonorID    string
	FoodName   string
	Quantity   string
	ExpiryTime time.Time
	PickupTime time.Time
	Location   model.Location
}

// ListListingsParams defines the optional filters for listing queries.
// Zero values mean the filter is not applied.
type ListListingsParams struct {
	DonorID string
	Status  model.ListingStatus
}

var (
	ErrListingNotFound     = errors.New("listing not found")
	ErrListingNotAvailable = errors.New("listing not available")
	ErrInvalidTimeWindow   = errors.New("expiry time precedes pickup time")
)

type listingUsecase struct {
	listingRepo repository.ListingRepository
}

func NewListingUsecase(listingRepo repository.ListingRepository) ListingUsecase {
	return &listingUsecase{listingRepo: listingRepo}
}

// Create persists a new listing in the available state with no claimant.
func (u *listingUsecase) Create(ctx context.Context, params CreateListingParams) (*model.Listing, error) {
	if params.ExpiryTime.Before(params.PickupTime) {
		return nil, ErrInvalidTimeWindow
	}

	return u.listingRepo.CreateListing(ctx, &model.Listing{
		DonorID:    params.DonorID,
		FoodName:   params.FoodName,
		Quantity:   params.Quantity,
		ExpiryTime: params.ExpiryTime,
		PickupTime: params.PickupTime,
		Location:   params.Location,
		Status:     model.StatusAvailable,
	})
}

// List returns listings matching the given filters.
func (u *listingUsecase) List(ctx context.Context, params ListListingsParams) ([]*model.Listing, error) {
	filter := repository.FilterListingsParams{}
	if params.DonorID != "" {
		filter.DonorID = &params.DonorID
	}
	if params.Status != "" {
		filter.Status = &params.Status
	}

	return u.listingRepo.ListListings(ctx, filter)
}

// Claim transitions an available listing to claimed and records the claimant.
// The transition is a single conditional update at the storage layer, so when
// two callers race for the same listing exactly one succeeds; the other gets
// ErrListingNotAvailable.
func (u *listingUsecase) Claim(ctx context.Context, listingID, claimantID string) (*model.Listing, error) {
	listing, err := u.listingRepo.ClaimListing(ctx, listingID, claimantID)
	if err == nil {
		return listing, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Nothing matched the conditional update: either the listing does not
	// exist, or it has already left the available state.
	if _, err := u.listingRepo.GetListing(ctx, listingID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}

		return nil, err
	}

	return nil, ErrListingNotAvailable
}

package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/foodshare/foodshare-api/internal/model"
	"github.com/foodshare/foodshare-api/internal/repository"
)

// fakeListingRepo is an in-memory ListingRepository. ClaimListing holds the
// mutex across the status check and the write, matching the single-operation
// semantics of the Mongo conditional update.
type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]*model.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*model.Listing)}
}

func (f *fakeListingRepo) CreateListing(_ context.Context, listing *model.Listing) (*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	listing.ID = bson.NewObjectID()
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	f.listings[listing.ID.Hex()] = listing

	return listing, nil
}

func (f *fakeListingRepo) GetListing(_ context.Context, id string) (*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	listing, ok := f.listings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *listing
	return &copied, nil
}

func (f *fakeListingRepo) ListListings(
	_ context.Context,
	params repository.FilterListingsParams,
) ([]*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*model.Listing
	for _, listing := range f.listings {
		if params.DonorID != nil && listing.DonorID != *params.DonorID {
			continue
		}
		if params.Status != nil && listing.Status != *params.Status {
			continue
		}
		copied := *listing
		matched = append(matched, &copied)
	}

	return matched, nil
}

func (f *fakeListingRepo) ClaimListing(_ context.Context, id, claimantID string) (*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	listing, ok := f.listings[id]
	if !ok || listing.Status != model.StatusAvailable {
		return nil, mongo.ErrNoDocuments
	}

	listing.Status = model.StatusClaimed
	listing.ClaimedBy = claimantID
	listing.UpdatedAt = time.Now()

	copied := *listing
	return &copied, nil
}

func createParams(donorID string) CreateListingParams {
	now := time.Now()
	return CreateListingParams{
		DonorID:    donorID,
		FoodName:   "Fresh Sandwiches",
		Quantity:   "20 boxes",
		PickupTime: now.Add(time.Hour),
		ExpiryTime: now.Add(24 * time.Hour),
		Location: model.Location{
			Address: "123 Main St, Anytown",
			Lat:     40.7128,
			Lng:     -74.006,
		},
	}
}

func TestCreateListing(t *testing.T) {
	u := NewListingUsecase(newFakeListingRepo())

	listing, err := u.Create(context.Background(), createParams("donor-1"))
	require.NoError(t, err)

	assert.Equal(t, model.StatusAvailable, listing.Status)
	assert.Empty(t, listing.ClaimedBy)
	assert.Equal(t, "donor-1", listing.DonorID)
	assert.False(t, listing.ID.IsZero())
}

func TestCreateListing_ExpiryBeforePickup(t *testing.T) {
	u := NewListingUsecase(newFakeListingRepo())

	params := createParams("donor-1")
	params.ExpiryTime = params.PickupTime.Add(-time.Minute)

	_, err := u.Create(context.Background(), params)
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestListListings_StatusFilter(t *testing.T) {
	repo := newFakeListingRepo()
	u := NewListingUsecase(repo)

	first, err := u.Create(context.Background(), createParams("donor-1"))
	require.NoError(t, err)
	_, err = u.Create(context.Background(), createParams("donor-2"))
	require.NoError(t, err)

	_, err = u.Claim(context.Background(), first.ID.Hex(), "ngo-1")
	require.NoError(t, err)

	available, err := u.List(context.Background(), ListListingsParams{Status: model.StatusAvailable})
	require.NoError(t, err)
	require.Len(t, available, 1)
	for _, listing := range available {
		assert.Equal(t, model.StatusAvailable, listing.Status)
	}
}

func TestListListings_DonorFilter(t *testing.T) {
	u := NewListingUsecase(newFakeListingRepo())

	_, err := u.Create(context.Background(), createParams("donor-1"))
	require.NoError(t, err)
	_, err = u.Create(context.Background(), createParams("donor-1"))
	require.NoError(t, err)
	_, err = u.Create(context.Background(), createParams("donor-2"))
	require.NoError(t, err)

	mine, err := u.List(context.Background(), ListListingsParams{DonorID: "donor-1"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestClaim_Success(t *testing.T) {
	u := NewListingUsecase(newFakeListingRepo())

	listing, err := u.Create(context.Background(), createParams("donor-1"))
	require.NoError(t, err)

	claimed, err := u.Claim(context.Background(), listing.ID.Hex(), "ngo-1")
	require.NoError(t, err)

	assert.Equal(t, model.StatusClaimed, claimed.Status)
	assert.Equal(t, "ngo-1", claimed.ClaimedBy)
}

func TestClaim_AlreadyClaimed(t *testing.T) {
	u := NewListingUsecase(newFakeListingRepo())

	listing, err := u.Create(context.Background(), createParams("donor-1"))
	require.NoError(t, err)

	_, err = u.Claim(context.Background(), listing.ID.Hex(), "ngo-1")
	require.NoError(t, err)

	_, err = u.Claim(context.Background(), listing.ID.Hex(), "ngo-2")
	assert.ErrorIs(t, err, ErrListingNotAvailable)

	// The first claimant is not overwritten.
	current, err := u.List(context.Background(), ListListingsParams{Status: model.StatusClaimed})
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "ngo-1", current[0].ClaimedBy)
}

func TestClaim_UnknownListing(t *testing.T) {
	u := NewListingUsecase(newFakeListingRepo())

	_, err := u.Claim(context.Background(), bson.NewObjectID().Hex(), "ngo-1")
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestClaim_Concurrent(t *testing.T) {
	u := NewListingUsecase(newFakeListingRepo())

	listing, err := u.Create(context.Background(), createParams("donor-1"))
	require.NoError(t, err)

	const claimers = 8
	errs := make([]error, claimers)
	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = u.Claim(context.Background(), listing.ID.Hex(), "ngo-1")
		}(i)
	}
	wg.Wait()

	var succeeded, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrListingNotAvailable):
			lost++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, claimers-1, lost)
}

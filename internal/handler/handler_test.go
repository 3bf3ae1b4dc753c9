package handler

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/foodshare/foodshare-api/internal/auth"
	"github.com/foodshare/foodshare-api/internal/config"
	"github.com/foodshare/foodshare-api/internal/model"
	"github.com/foodshare/foodshare-api/internal/usecase"
	"github.com/foodshare/foodshare-api/internal/validation"
)

var testTokenCfg = config.TokenConfig{
	Secret:    "test-secret",
	ExpiresIn: time.Hour,
	Issuer:    "foodshare-api",
}

// fakeAuthUsecase returns canned results per call.
type fakeAuthUsecase struct {
	registerUser *model.User
	registerErr  error

	loginToken string
	loginUser  *model.User
	loginErr   error
}

func (f *fakeAuthUsecase) Register(context.Context, usecase.RegisterParams) (*model.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeAuthUsecase) Login(context.Context, usecase.LoginParams) (string, *model.User, error) {
	return f.loginToken, f.loginUser, f.loginErr
}

// fakeListingUsecase records the params it was called with.
type fakeListingUsecase struct {
	createListing *model.Listing
	createErr     error
	createParams  usecase.CreateListingParams

	listListings []*model.Listing
	listErr      error
	listParams   usecase.ListListingsParams

	claimListing *model.Listing
	claimErr     error
	claimedID    string
	claimantID   string
}

func (f *fakeListingUsecase) Create(
	_ context.Context,
	params usecase.CreateListingParams,
) (*model.Listing, error) {
	f.createParams = params
	return f.createListing, f.createErr
}

func (f *fakeListingUsecase) List(
	_ context.Context,
	params usecase.ListListingsParams,
) ([]*model.Listing, error) {
	f.listParams = params
	return f.listListings, f.listErr
}

func (f *fakeListingUsecase) Claim(
	_ context.Context,
	listingID, claimantID string,
) (*model.Listing, error) {
	f.claimedID = listingID
	f.claimantID = claimantID
	return f.claimListing, f.claimErr
}

func newTestRouter(t *testing.T, authUC usecase.AuthUsecase, listingUC usecase.ListingUsecase) *chi.Mux {
	t.Helper()

	validator, err := validation.New()
	require.NoError(t, err)

	logger := zerolog.Nop()
	jwtAuth := auth.NewJWTAuthenticator(testTokenCfg.Issuer, testTokenCfg.Issuer)

	authHandler := NewAuthHandler(authUC, validator, &logger)
	listingHandler := NewListingHandler(listingUC, validator, &logger)

	return NewRouter(&logger, jwtAuth, testTokenCfg, authHandler, listingHandler)
}

func mintToken(t *testing.T, userID string, role model.Role) string {
	t.Helper()

	jwtAuth := auth.NewJWTAuthenticator(testTokenCfg.Issuer, testTokenCfg.Issuer)
	token, err := jwtAuth.IssueToken(userID, string(role), testTokenCfg.Secret, testTokenCfg.ExpiresIn)
	require.NoError(t, err)

	return token
}

func testUser(role model.Role) *model.User {
	return &model.User{
		ID:           bson.NewObjectID(),
		Name:         "Jordan",
		Email:        "jordan@example.com",
		PasswordHash: "$argon2id$not-a-real-hash",
		Role:         role,
		Address:      "123 Main St",
		Phone:        "555-0100",
	}
}

func testListing(donorID string, status model.ListingStatus) *model.Listing {
	now := time.Now()
	return &model.Listing{
		ID:         bson.NewObjectID(),
		DonorID:    donorID,
		FoodName:   "Rice and Curry",
		Quantity:   "5 kg",
		PickupTime: now.Add(time.Hour),
		ExpiryTime: now.Add(24 * time.Hour),
		Location:   model.Location{Address: "456 Oak Ave", Lat: 37.77, Lng: -122.42},
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

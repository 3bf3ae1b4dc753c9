package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/foodshare/foodshare-api/internal/model"
)

// ListingRepository defines the interface for listing-related database operations.
type ListingRepository interface {
	CreateListing(ctx context.Context, listing *model.Listing) (*model.Listing, error)
	GetListing(ctx context.Context, id string) (*model.Listing, error)
	ListListings(ctx context.Context, params FilterListingsParams) ([]*model.Listing, error)
	ClaimListing(ctx context.Context, id, claimantID string) (*model.Listing, error)
}

// FilterListingsParams defines the parameters for filtering listings.
// Only the fields that are not nil are applied.
type FilterListingsParams struct {
	DonorID *string
	Status  *model.ListingStatus
}

const listingCollection = "listings"

type listingMongoRepository struct {
	db *mongo.Database
}

// NewListingMongoRepository creates the listings repository and ensures the
// indexes backing the donor and status queries exist.
func NewListingMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ListingRepository {
	collection := db.Collection(listingCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "donor_id", Value: 1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create listing indexes")
	}

	return &listingMongoRepository{db: db}
}

func (r *listingMongoRepository) CreateListing(ctx context.Context, listing *model.Listing) (*model.Listing, error) {
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	result, err := r.db.Collection(listingCollection).InsertOne(ctx, listing)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		listing.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return listing, nil
}

func (r *listingMongoRepository) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// An unparsable id cannot match any document.
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(listingCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var listing model.Listing
	if err := result.Decode(&listing); err != nil {
		return nil, err
	}

	return &listing, nil
}

func (r *listingMongoRepository) ListListings(
	ctx context.Context,
	params FilterListingsParams,
) ([]*model.Listing, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	// Build filter query
	filter := bson.M{}
	if params.DonorID != nil {
		filter["donor_id"] = *params.DonorID
	}
	if params.Status != nil {
		filter["status"] = *params.Status
	}

	cursor, err := r.db.Collection(listingCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []*model.Listing
	for cursor.Next(ctx) {
		var listing model.Listing
		if err := cursor.Decode(&listing); err != nil {
			return nil, err
		}
		listings = append(listings, &listing)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}

// ClaimListing executes the claim transition as a single conditional update:
// the status check and the write happen in one server-side operation, so two
// concurrent claimers can never both pass the check. When no document matches
// the filter it returns mongo.ErrNoDocuments; the caller distinguishes an
// unknown id from a listing that has already left the available state.
func (r *listingMongoRepository) ClaimListing(ctx context.Context, id, claimantID string) (*model.Listing, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(listingCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID, "status": model.StatusAvailable},
		bson.M{"$set": bson.M{
			"status":     model.StatusClaimed,
			"claimed_by": claimantID,
			"updated_at": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var listing model.Listing
	if err := result.Decode(&listing); err != nil {
		return nil, err
	}

	return &listing, nil
}

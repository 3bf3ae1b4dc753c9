package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ListingStatus is the lifecycle state of a food listing.
type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusRequested ListingStatus = "requested"
	StatusClaimed   ListingStatus = "claimed"
	StatusAccepted  ListingStatus = "accepted"
	StatusCompleted ListingStatus = "completed"
)

// Valid reports whether s is a declared listing status.
func (s ListingStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusRequested, StatusClaimed, StatusAccepted, StatusCompleted:
		return true
	}
	return false
}

// Location is a free-text address with coordinates. Coordinates are stored
// only; no geospatial indexing or querying is done on them.
type Location struct {
	Address string  `bson:"address" json:"address"`
	Lat     float64 `bson:"lat"     json:"lat"`
	Lng     float64 `bson:"lng"     json:"lng"`
}

// Listing represents a single food-donation record. DonorID and ClaimedBy are
// non-owning references to accounts; deleting an account does not cascade.
//
// Invariant: ClaimedBy is set iff Status has left StatusAvailable.
type Listing struct {
	ID         bson.ObjectID `bson:"_id,omitempty"         json:"id"`
	DonorID    string        `bson:"donor_id"              json:"donorId"`
	FoodName   string        `bson:"food_name"             json:"foodName"`
	Quantity   string        `bson:"quantity"              json:"quantity"`
	ExpiryTime time.Time     `bson:"expiry_time"           json:"expiryTime"`
	PickupTime time.Time     `bson:"pickup_time"           json:"pickupTime"`
	Location   Location      `bson:"location"              json:"location"`
	Status     ListingStatus `bson:"status"                json:"status"`
	ClaimedBy  string        `bson:"claimed_by,omitempty"  json:"claimedBy,omitempty"`
	CreatedAt  time.Time     `bson:"created_at"            json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updated_at"            json:"updatedAt"`
}

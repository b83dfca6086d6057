package entity

import "time"

// CreditRecord is one pool entry keyed by (user, top-level category).
// The same shape backs both the free and the paid collection.
type CreditRecord struct {
	UID      string    `bson:"UID" json:"uid"`
	Category int       `bson:"category" json:"category"`
	Credits  int       `bson:"credits" json:"credits"`
	Created  time.Time `bson:"created" json:"created"`
	Updated  time.Time `bson:"updated" json:"updated"`
}

// Seed balances for a freshly initialized (user, category) pair.
const (
	InitialFreeCredits = 1
	InitialPaidCredits = 0
)

package entity

// User is the aggregate root for an account. UID and MobileNumber are
// immutable after creation. FollowersID and FollowingID reference the two
// follow aggregates owned by this user.
type User struct {
	UID           string    `bson:"uid" json:"uid"`
	Username      string    `bson:"username" json:"username"`
	MobileNumber  string    `bson:"mobilenumber" json:"mobilenumber"`
	Email         string    `bson:"email" json:"email"`
	EmailVerified bool      `bson:"email_verified" json:"email_verified"`
	ProfileImg    string    `bson:"profile_img,omitempty" json:"profile_img,omitempty"`
	Location      []float64 `bson:"user_location" json:"user_location"`
	Favorites     []string  `bson:"favorites" json:"favorites"`
	History       []string  `bson:"history" json:"history"`
	MyAds         []string  `bson:"my_ads" json:"my_ads"`
	Chatrooms     []string  `bson:"chatrooms" json:"chatrooms"`
	FollowersID   string    `bson:"followers" json:"followers"`
	FollowingID   string    `bson:"following" json:"following"`
}

const (
	DefaultUsername = "ListinkerUser"
	DefaultEmail    = "hello@listinker.com"

	// HistoryLimit bounds the recently-viewed list, newest first.
	HistoryLimit = 15
)

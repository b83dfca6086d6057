package entity

// Ad is the aggregate root for a classified listing.
// Location is [latitude, longitude]; Categories are leaf ids that all share
// one parent department.
type Ad struct {
	AdID        string    `bson:"ad_id" json:"ad_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Price       int       `bson:"price" json:"price"`
	Images      []string  `bson:"image" json:"image"`
	Categories  []int     `bson:"category" json:"category"`
	Location    []float64 `bson:"ad_loc" json:"ad_loc"`
	TimeCreated string    `bson:"time_created" json:"time_created"`
	Owner       string    `bson:"owner" json:"owner"`
	Status      string    `bson:"status" json:"status"`
	Views       int       `bson:"views" json:"views"`
	Favorited   int       `bson:"favorited" json:"favorited"`
	ViewedBy    []string  `bson:"viewed_by,omitempty" json:"-"`
}

// StatusUnderReview is the lifecycle status assigned to every new ad.
const StatusUnderReview = "under-review"

// FeedEntry is the reduced ad shape returned by the feed: first image only,
// owner resolved to a username.
type FeedEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Views       int    `json:"views"`
	Favorited   int    `json:"favorited"`
	Username    string `json:"username"`
	AdID        string `json:"ad_id"`
	TimeCreated string `json:"time_created"`
	Categories  []int  `json:"category"`
}

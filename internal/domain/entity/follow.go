package entity

// FollowersDoc is the per-user aggregate of accounts following UserID.
// Count must equal len(Followers) after any successful write.
type FollowersDoc struct {
	ID        string   `bson:"_id" json:"id"`
	UserID    string   `bson:"user_id" json:"user_id"`
	Followers []string `bson:"followers" json:"followers"`
	Count     int      `bson:"followers_count" json:"followers_count"`
}

// FollowingDoc is the per-user aggregate of accounts UserID follows.
type FollowingDoc struct {
	ID        string   `bson:"_id" json:"id"`
	UserID    string   `bson:"user_id" json:"user_id"`
	Following []string `bson:"following" json:"following"`
	Count     int      `bson:"following_count" json:"following_count"`
}

// RelatedUser is the enriched entry returned by follower/following listings.
type RelatedUser struct {
	UID        string `json:"uid"`
	Username   string `json:"username"`
	ProfileImg string `json:"profile_img,omitempty"`
}

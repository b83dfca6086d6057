package entity

// Chatroom and Message are out of core scope; they exist so account deletion
// can cascade over them.
type Chatroom struct {
	ChatroomID   string   `bson:"chatroom_id" json:"chatroom_id"`
	Participants []string `bson:"participants" json:"participants"`
	AdID         string   `bson:"ad_id,omitempty" json:"ad_id,omitempty"`
}

type Message struct {
	MessageID  string `bson:"message_id" json:"message_id"`
	ChatroomID string `bson:"chatroom_id" json:"chatroom_id"`
	Sender     string `bson:"sender" json:"sender"`
	Body       string `bson:"body" json:"body"`
	SentAt     string `bson:"sent_at" json:"sent_at"`
}

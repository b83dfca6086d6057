package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/listinker/listinker-api/internal/domain/entity"
	"github.com/listinker/listinker-api/internal/domain/repository"
)

type ChatRepository struct {
	chatrooms *mongo.Collection
	messages  *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{
		chatrooms: db.Collection(colChatrooms),
		messages:  db.Collection(colMessages),
	}
}

// DeleteForUser removes every chatroom the user participates in along
// with the messages exchanged inside those rooms.
func (r *ChatRepository) DeleteForUser(ctx context.Context, uid string) error {
	cur, err := r.chatrooms.Find(ctx, bson.M{"participants": uid})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	var rooms []entity.Chatroom
	if err := cur.All(ctx, &rooms); err != nil {
		return err
	}
	if len(rooms) == 0 {
		return nil
	}
	ids := make([]string, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ChatroomID)
	}
	if _, err := r.messages.DeleteMany(ctx, bson.M{"chatroom_id": bson.M{"$in": ids}}); err != nil {
		return err
	}
	_, err = r.chatrooms.DeleteMany(ctx, bson.M{"chatroom_id": bson.M{"$in": ids}})
	return err
}

var _ repository.ChatRepository = (*ChatRepository)(nil)

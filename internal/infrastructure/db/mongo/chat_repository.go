package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/movemate/logistics-api/internal/core/domain"
	"github.com/movemate/logistics-api/internal/core/ports"
)

const collectionChats = "chat_sessions"

type ChatRepository struct {
	col *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{col: db.Collection(collectionChats)}
}

// Create inserts a new chat session document.
func (r *ChatRepository) Create(ctx context.Context, s *domain.ChatSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

// FindBySessionID retrieves a chat session by its public session id.
func (r *ChatRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.ChatSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.ChatSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns chat sessions matching the equality filter, newest-updated first.
func (r *ChatRepository) List(ctx context.Context, filter ports.ChatListFilter) ([]*domain.ChatSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*domain.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update replaces the mutable fields of the session row and atomically bumps
// its version counter, so consumers of change notifications can discard
// stale snapshots.
func (r *ChatRepository) Update(ctx context.Context, s *domain.ChatSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"session_id": s.SessionID}, chatUpdateDocument(s))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSessionNotFound
	}
	s.Version++
	return nil
}

// chatUpdateDocument builds the update for a session write. version is bumped
// through $inc only; it must never appear in the $set block, or a concurrent
// writer's increment could be overwritten with a stale count.
func chatUpdateDocument(s *domain.ChatSession) bson.M {
	return bson.M{
		"$set": bson.M{
			"customer_name":  s.CustomerName,
			"customer_email": s.CustomerEmail,
			"language":       s.Language,
			"status":         s.Status,
			"is_bot":         s.IsBot,
			"unread_count":   s.UnreadCount,
			"messages":       s.Messages,
			"updated_at":     s.UpdatedAt,
		},
		"$inc": bson.M{"version": int64(1)},
	}
}

// Delete removes a chat session by session id.
func (r *ChatRepository) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the chat sessions collection.
func (r *ChatRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	journeyserrors "actman/internal/journeys/errors"
	"actman/pkg/config"
	"actman/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Journeys"
)

type mongoJourneyRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

// JourneyRepository stores wizard state between steps. Journeys are
// keyed by a UUID issued on creation and expire via a TTL index when
// abandoned.
type JourneyRepository interface {
	Create(ctx context.Context, journey *model.Journey) error
	FindByID(ctx context.Context, id string) (*model.Journey, error)
	Upsert(ctx context.Context, journey *model.Journey) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

func NewMongoJourneyRepository(cfg *config.Config) JourneyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoJourneyRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout caps the operation at the given timeout unless the caller
// already carries a tighter deadline.
func (r *mongoJourneyRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoJourneyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(r.cfg.JourneyTTL.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to create journey TTL index: %w", err)
	}
	return nil
}

func (r *mongoJourneyRepository) Create(ctx context.Context, journey *model.Journey) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	if journey.ID == "" {
		journey.ID = uuid.New().String()
	}
	journey.CreatedAt = now
	journey.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, journey); err != nil {
		return fmt.Errorf("failed to create journey: %w", err)
	}
	return nil
}

func (r *mongoJourneyRepository) FindByID(ctx context.Context, id string) (*model.Journey, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", journeyserrors.ErrInvalidID, id)
	}

	var journey model.Journey
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&journey)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, journeyserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journey: %w", err)
	}

	return &journey, nil
}

func (r *mongoJourneyRepository) Upsert(ctx context.Context, journey *model.Journey) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(journey.ID); err != nil {
		return fmt.Errorf("%w: %s", journeyserrors.ErrInvalidID, journey.ID)
	}

	journey.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": journey.ID}, journey, opts); err != nil {
		return fmt.Errorf("failed to upsert journey: %w", err)
	}
	return nil
}

func (r *mongoJourneyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", journeyserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete journey: %w", err)
	}
	if result.DeletedCount == 0 {
		return journeyserrors.ErrNotFound
	}
	return nil
}

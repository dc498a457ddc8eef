package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"airlock/pkg/config"
	"airlock/pkg/model"
)

const (
	CollectionName = "Reviews"
)

// RatingSummary is the aggregation result for a target. Rating is nil
// when the target has no reviews, which is different from a zero rating.
type RatingSummary struct {
	Rating *float64
	Count  int64
}

type ReviewRepository interface {
	Insert(ctx context.Context, review *model.Review) error
	FindByTarget(ctx context.Context, targetType model.TargetType, targetID string) ([]*model.Review, error)
	FindByBooking(ctx context.Context, bookingID string) ([]*model.Review, error)
	ExistsForBookingTarget(ctx context.Context, bookingID string, targetType model.TargetType) (bool, error)
	AggregateRating(ctx context.Context, targetType model.TargetType, targetID string) (*RatingSummary, error)
}

type mongoReviewRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReviewRepository(cfg *config.Config) ReviewRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReviewRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoReviewRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoReviewRepository) Insert(ctx context.Context, review *model.Review) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *mongoReviewRepository) FindByTarget(ctx context.Context, targetType model.TargetType, targetID string) ([]*model.Review, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"target_type": targetType,
		"target_id":   targetID,
	}
	return r.find(ctx, filter)
}

func (r *mongoReviewRepository) FindByBooking(ctx context.Context, bookingID string) ([]*model.Review, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"booking_id": bookingID})
}

func (r *mongoReviewRepository) find(ctx context.Context, filter bson.M) ([]*model.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*model.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

func (r *mongoReviewRepository) ExistsForBookingTarget(ctx context.Context, bookingID string, targetType model.TargetType) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"booking_id":  bookingID,
		"target_type": targetType,
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}
	return count > 0, nil
}

func (r *mongoReviewRepository) AggregateRating(ctx context.Context, targetType model.TargetType, targetID string) (*RatingSummary, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"target_type": targetType,
			"target_id":   targetID,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"rating": bson.M{"$avg": "$rating"},
			"count":  bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rating: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Rating float64 `bson:"rating"`
		Count  int64   `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode rating aggregation: %w", err)
	}

	if len(results) == 0 {
		return &RatingSummary{Rating: nil, Count: 0}, nil
	}

	return &RatingSummary{
		Rating: &results[0].Rating,
		Count:  results[0].Count,
	}, nil
}

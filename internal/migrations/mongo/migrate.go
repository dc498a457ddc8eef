package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"airlock/internal/migrations/mongo/validators"
	"airlock/pkg/logger"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		// Overlap scans filter by listing and status, then range over the
		// check-in/check-out dates.
		{Keys: bson.D{
			{Key: "listing_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "check_in", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "guest_id", Value: 1},
			{Key: "status", Value: 1},
		}},
	}

	SlotLocksIndexes = []mongo.IndexModel{
		// Mongo reaps expired locks; the advisory lock itself is the _id
		// uniqueness, this only bounds how long a stale lock can linger.
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	ListingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "num_of_beds", Value: 1},
			{Key: "cost_per_night", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "is_featured", Value: 1},
			{Key: "cost_per_night", Value: -1},
		}},
	}

	ReviewsIndexes = []mongo.IndexModel{
		// One review per (booking, target type) is enforced here, not just
		// in the service-level existence check.
		{
			Keys: bson.D{
				{Key: "booking_id", Value: 1},
				{Key: "target_type", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{
			{Key: "target_type", Value: 1},
			{Key: "target_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	}

	UsersIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "role", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	}
)

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	collections := map[string]collectionDef{
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"Slot_locks": {
			Indexes: SlotLocksIndexes,
		},
		"Listings": {
			Indexes:   ListingsIndexes,
			Validator: validators.ListingValidator,
		},
		"Reviews": {
			Indexes:   ReviewsIndexes,
			Validator: validators.ReviewValidator,
		},
		"Wallets": {
			Validator: validators.WalletValidator,
		},
		"Users": {
			Indexes: UsersIndexes,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if len(def.Indexes) == 0 {
			continue
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
		log.Info("Ensured indexes", "collection", name, "count", len(def.Indexes))
	}

	log.Info("All migrations applied")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts = opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator == nil {
		return nil
	}
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	_, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	return err
}

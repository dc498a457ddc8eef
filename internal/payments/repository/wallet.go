package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	paymentserrors "airlock/internal/payments/errors"
	"airlock/pkg/config"
	"airlock/pkg/model"
)

const (
	CollectionName = "Wallets"
)

type WalletRepository interface {
	Find(ctx context.Context, userID string) (*model.Wallet, error)
	Credit(ctx context.Context, userID string, amount float64) (*model.Wallet, error)
	Debit(ctx context.Context, userID string, amount float64) (*model.Wallet, error)
}

type mongoWalletRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoWalletRepository(cfg *config.Config) WalletRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoWalletRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoWalletRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoWalletRepository) Find(ctx context.Context, userID string) (*model.Wallet, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var wallet model.Wallet
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&wallet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, paymentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}

	return &wallet, nil
}

// Credit adds funds, creating the wallet on first use.
func (r *mongoWalletRepository) Credit(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"amount": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var wallet model.Wallet
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	return &wallet, nil
}

// Debit subtracts funds only when the balance covers the amount. The
// balance guard lives in the filter so concurrent debits cannot drive
// the wallet negative.
func (r *mongoWalletRepository) Debit(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":    userID,
		"amount": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{"amount": -amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var wallet model.Wallet
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&wallet)
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}

	// No match: distinguish a missing wallet from a short balance.
	if _, findErr := r.Find(ctx, userID); findErr != nil {
		return nil, findErr
	}
	return nil, paymentserrors.ErrInsufficientFunds
}

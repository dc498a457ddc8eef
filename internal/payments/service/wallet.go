package service

import (
	"context"
	"errors"

	paymentserrors "airlock/internal/payments/errors"
	"airlock/internal/payments/repository"
	"airlock/pkg/config"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
)

type WalletService interface {
	GetWallet(ctx context.Context, userID string) (*model.Wallet, error)
	AddFunds(ctx context.Context, userID string, amount float64) (*model.Wallet, error)
	SubtractFunds(ctx context.Context, userID string, amount float64) (*model.Wallet, error)
}

type walletService struct {
	repo repository.WalletRepository
	cfg  *config.Config
}

func NewWalletService(repo repository.WalletRepository, cfg *config.Config) WalletService {
	return &walletService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *walletService) GetWallet(ctx context.Context, userID string) (*model.Wallet, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	wallet, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, paymentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Wallet", userID)
		}
		s.cfg.Log.Error("Failed to retrieve wallet", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve wallet", err)
	}

	return wallet, nil
}

func (s *walletService) AddFunds(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
	if err := validateFundsChange(userID, amount); err != nil {
		return nil, err
	}

	wallet, err := s.repo.Credit(ctx, userID, amount)
	if err != nil {
		s.cfg.Log.Error("Failed to add funds", "user_id", userID, "amount", amount, "error", err)
		return nil, apperrors.Internal("Failed to add funds", err)
	}

	s.cfg.Log.Info("Funds added", "user_id", userID, "amount", amount, "balance", wallet.Amount)
	return wallet, nil
}

func (s *walletService) SubtractFunds(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
	if err := validateFundsChange(userID, amount); err != nil {
		return nil, err
	}

	wallet, err := s.repo.Debit(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, paymentserrors.ErrInsufficientFunds) {
			s.cfg.Log.Warn("Debit refused, insufficient funds", "user_id", userID, "amount", amount)
			return nil, apperrors.InsufficientFunds(userID)
		}
		if errors.Is(err, paymentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Wallet", userID)
		}
		s.cfg.Log.Error("Failed to subtract funds", "user_id", userID, "amount", amount, "error", err)
		return nil, apperrors.Internal("Failed to subtract funds", err)
	}

	s.cfg.Log.Info("Funds subtracted", "user_id", userID, "amount", amount, "balance", wallet.Amount)
	return wallet, nil
}

func validateFundsChange(userID string, amount float64) error {
	if userID == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}
	if amount <= 0 {
		return apperrors.InvalidInput("Amount must be positive")
	}
	return nil
}

package service

import (
	"context"
	"testing"
	"time"

	paymentserrors "airlock/internal/payments/errors"
	"airlock/pkg/config"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/logger"
	"airlock/pkg/model"
)

type mockWalletRepository struct {
	findFunc   func(ctx context.Context, userID string) (*model.Wallet, error)
	creditFunc func(ctx context.Context, userID string, amount float64) (*model.Wallet, error)
	debitFunc  func(ctx context.Context, userID string, amount float64) (*model.Wallet, error)
}

func (m *mockWalletRepository) Find(ctx context.Context, userID string) (*model.Wallet, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, userID)
	}
	return nil, paymentserrors.ErrNotFound
}

func (m *mockWalletRepository) Credit(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
	if m.creditFunc != nil {
		return m.creditFunc(ctx, userID, amount)
	}
	return &model.Wallet{UserID: userID, Amount: amount}, nil
}

func (m *mockWalletRepository) Debit(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
	if m.debitFunc != nil {
		return m.debitFunc(ctx, userID, amount)
	}
	return &model.Wallet{UserID: userID, Amount: 0}, nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func TestSubtractFunds_InsufficientBalance(t *testing.T) {
	repo := &mockWalletRepository{
		debitFunc: func(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
			return nil, paymentserrors.ErrInsufficientFunds
		},
	}
	svc := NewWalletService(repo, testConfig())

	_, err := svc.SubtractFunds(context.Background(), "guest-1", 500)
	if !apperrors.HasCode(err, apperrors.CodeInsufficientFunds) {
		t.Fatalf("expected INSUFFICIENT_FUNDS, got %v", err)
	}

	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != 402 {
		t.Errorf("expected HTTP 402, got %d", appErr.HTTPStatus)
	}
}

func TestSubtractFunds_MissingWallet(t *testing.T) {
	repo := &mockWalletRepository{
		debitFunc: func(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
			return nil, paymentserrors.ErrNotFound
		},
	}
	svc := NewWalletService(repo, testConfig())

	_, err := svc.SubtractFunds(context.Background(), "guest-1", 100)
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestFundsChange_InvalidAmounts(t *testing.T) {
	svc := NewWalletService(&mockWalletRepository{}, testConfig())

	tests := []struct {
		name   string
		userID string
		amount float64
	}{
		{"zero amount", "guest-1", 0},
		{"negative amount", "guest-1", -10},
		{"empty user", "", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddFunds(context.Background(), tt.userID, tt.amount); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
				t.Errorf("AddFunds: expected INVALID_INPUT, got %v", err)
			}
			if _, err := svc.SubtractFunds(context.Background(), tt.userID, tt.amount); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
				t.Errorf("SubtractFunds: expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestAddFunds_ReturnsUpdatedBalance(t *testing.T) {
	repo := &mockWalletRepository{
		creditFunc: func(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
			return &model.Wallet{UserID: userID, Amount: 150 + amount}, nil
		},
	}
	svc := NewWalletService(repo, testConfig())

	wallet, err := svc.AddFunds(context.Background(), "guest-1", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wallet.Amount != 200 {
		t.Errorf("expected balance 200, got %f", wallet.Amount)
	}
}

func TestGetWallet_NotFound(t *testing.T) {
	svc := NewWalletService(&mockWalletRepository{}, testConfig())

	_, err := svc.GetWallet(context.Background(), "nobody")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

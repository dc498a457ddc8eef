package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
)

// PaymentsClient talks to the payments service. Debit refusals come back as
// typed INSUFFICIENT_FUNDS errors so the saga can treat them as terminal.
type PaymentsClient struct {
	httpClient *HttpClient
}

func NewPaymentsClient(baseURL string) *PaymentsClient {
	return &PaymentsClient{
		httpClient: NewHttpClient(baseURL),
	}
}

type fundsChange struct {
	Amount float64 `json:"amount"`
}

func (c *PaymentsClient) GetWallet(ctx context.Context, userID string) (*model.Wallet, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/wallet/"+url.PathEscape(userID))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFoundWithID("Wallet", userID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payments service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var wallet model.Wallet
	if err := decodeData(resp, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (c *PaymentsClient) AddFunds(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
	resp, err := c.httpClient.PATCH(ctx, "/api/v1/wallet/"+url.PathEscape(userID)+"/add", fundsChange{Amount: amount})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payments service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var wallet model.Wallet
	if err := decodeData(resp, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (c *PaymentsClient) SubtractFunds(ctx context.Context, userID string, amount float64) (*model.Wallet, error) {
	resp, err := c.httpClient.PATCH(ctx, "/api/v1/wallet/"+url.PathEscape(userID)+"/subtract", fundsChange{Amount: amount})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusPaymentRequired {
		return nil, apperrors.InsufficientFunds(userID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payments service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var wallet model.Wallet
	if err := decodeData(resp, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Debit and Credit adapt the client to the saga's wallet capability.

func (c *PaymentsClient) Debit(ctx context.Context, userID string, amount float64) error {
	_, err := c.SubtractFunds(ctx, userID, amount)
	return err
}

func (c *PaymentsClient) Credit(ctx context.Context, userID string, amount float64) error {
	_, err := c.AddFunds(ctx, userID, amount)
	return err
}

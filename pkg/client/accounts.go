package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
)

// AccountsClient backs the Host and Guest entity lookups.
type AccountsClient struct {
	httpClient *HttpClient
}

func NewAccountsClient(baseURL string) *AccountsClient {
	return &AccountsClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *AccountsClient) GetUser(ctx context.Context, id string) (*model.User, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/users/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFoundWithID("User", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("accounts service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var user model.User
	if err := decodeData(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

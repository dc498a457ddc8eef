package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
)

// ListingsClient talks to the listings service. It is the saga's pricing
// source and the resolver's Listing lookup.
type ListingsClient struct {
	httpClient *HttpClient
}

func NewListingsClient(baseURL string) *ListingsClient {
	return &ListingsClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ListingsClient) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/listings/id/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFoundWithID("Listing", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var listing model.Listing
	if err := decodeData(resp, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// TotalCost asks the listings service to price a stay.
func (c *ListingsClient) TotalCost(ctx context.Context, listingID string, checkIn, checkOut time.Time) (float64, error) {
	q := url.Values{}
	q.Set("check_in", checkIn.Format(time.RFC3339))
	q.Set("check_out", checkOut.Format(time.RFC3339))

	path := "/api/v1/listings/id/" + url.PathEscape(listingID) + "/cost?" + q.Encode()
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("listings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var quote model.CostQuote
	if err := decodeData(resp, &quote); err != nil {
		return 0, err
	}
	return quote.TotalCost, nil
}

func (c *ListingsClient) Search(ctx context.Context, numOfBeds int, limit int, offset int64) ([]*model.Listing, *Metadata, error) {
	q := url.Values{}
	if numOfBeds > 0 {
		q.Set("num_of_beds", fmt.Sprintf("%d", numOfBeds))
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	resp, err := c.httpClient.GET(ctx, "/api/v1/listings?"+q.Encode())
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("listings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var listings []*model.Listing
	meta, err := decodePaginated(resp, &listings)
	if err != nil {
		return nil, nil, err
	}
	return listings, meta, nil
}

func (c *ListingsClient) Featured(ctx context.Context, limit int) ([]*model.Listing, error) {
	resp, err := c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/listings/featured?limit=%d", limit))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var listings []*model.Listing
	if err := decodeData(resp, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *ListingsClient) Create(ctx context.Context, listing *model.Listing) (*model.Listing, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/listings", listing)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("listings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var created model.Listing
	if err := decodeData(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"airlock/pkg/model"
)

type ReviewsClient struct {
	httpClient *HttpClient
}

func NewReviewsClient(baseURL string) *ReviewsClient {
	return &ReviewsClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ReviewsClient) ForTarget(ctx context.Context, targetType model.TargetType, targetID string) ([]*model.Review, error) {
	path := "/api/v1/targets/" + url.PathEscape(string(targetType)) + "/" + url.PathEscape(targetID) + "/reviews"
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reviews service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var reviews []*model.Review
	if err := decodeData(resp, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// OverallRating returns nil when the target has no reviews yet; callers must
// not read that as a zero rating.
func (c *ReviewsClient) OverallRating(ctx context.Context, targetType model.TargetType, targetID string) (*float64, error) {
	path := "/api/v1/targets/" + url.PathEscape(string(targetType)) + "/" + url.PathEscape(targetID) + "/rating"
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reviews service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var result struct {
		Rating *float64 `json:"rating"`
		Count  int64    `json:"count"`
	}
	if err := decodeData(resp, &result); err != nil {
		return nil, err
	}
	return result.Rating, nil
}

func (c *ReviewsClient) ForBooking(ctx context.Context, bookingID string) ([]*model.Review, error) {
	path := "/api/v1/bookings/" + url.PathEscape(bookingID) + "/reviews"
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reviews service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var reviews []*model.Review
	if err := decodeData(resp, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

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

type BookingsClient struct {
	httpClient *HttpClient
}

func NewBookingsClient(baseURL string) *BookingsClient {
	return &BookingsClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingsClient) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/bookings", req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("bookings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var booking model.Booking
	if err := decodeData(resp, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingsClient) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/bookings/id/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFoundWithID("Booking", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bookings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var booking model.Booking
	if err := decodeData(resp, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingsClient) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/bookings/id/"+url.PathEscape(id)+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFoundWithID("Booking", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bookings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var booking model.Booking
	if err := decodeData(resp, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingsClient) ForListing(ctx context.Context, listingID string, status model.BookingStatus) ([]*model.Booking, error) {
	path := "/api/v1/listings/" + url.PathEscape(listingID) + "/bookings"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bookings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var bookings []*model.Booking
	if err := decodeData(resp, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) ForGuest(ctx context.Context, guestID string, status model.BookingStatus) ([]*model.Booking, error) {
	path := "/api/v1/guests/" + url.PathEscape(guestID) + "/bookings"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bookings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var bookings []*model.Booking
	if err := decodeData(resp, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// IsAvailable asks the bookings service whether a listing is free for the
// half-open [checkIn, checkOut) range.
func (c *BookingsClient) IsAvailable(ctx context.Context, listingID string, checkIn, checkOut time.Time) (bool, error) {
	q := url.Values{}
	q.Set("check_in", checkIn.Format(time.RFC3339))
	q.Set("check_out", checkOut.Format(time.RFC3339))

	path := "/api/v1/listings/" + url.PathEscape(listingID) + "/availability?" + q.Encode()
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("bookings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var result struct {
		Available bool `json:"available"`
	}
	if err := decodeData(resp, &result); err != nil {
		return false, err
	}
	return result.Available, nil
}

func (c *BookingsClient) BookedDates(ctx context.Context, listingID string) ([]model.DateRange, error) {
	path := "/api/v1/listings/" + url.PathEscape(listingID) + "/booked-dates"
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bookings service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var ranges []model.DateRange
	if err := decodeData(resp, &ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}

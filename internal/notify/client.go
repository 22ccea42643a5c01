// Package notify is the API service's client for the email service.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
)

// Paths served by the email service.
const (
	VendorNotificationPath = "/email/vendor-notification"
	OwnerNotificationPath  = "/email/owner-notification"
)

// VendorRequest is the body the client sends to POST /email/vendor-notification.
type VendorRequest struct {
	QuoteID     int64               `json:"quote_id"`
	VendorEmail string              `json:"vendor_email"`
	VendorName  string              `json:"vendor_name"`
	QuoteData   domain.QuotePayload `json:"quote_data"`
}

// OwnerRequest is the body the client sends to POST /email/owner-notification.
type OwnerRequest struct {
	QuoteID    int64               `json:"quote_id"`
	OwnerEmail string              `json:"owner_email"`
	VendorName string              `json:"vendor_name"`
	QuoteData  domain.QuotePayload `json:"quote_data"`
}

// Client is a resty-backed renderer that forwards notifications to the email
// service over HTTP.
type Client struct {
	http *resty.Client
}

// NewClient builds a client for the email service at baseURL. Every request
// is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &Client{http: c}
}

// apiError mirrors the JSON error envelope returned by both services.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Render sends one notification and returns the email service's verdict.
// An unreachable email service (connection refused, timeout) wraps
// domain.ErrUnavailable; any non-2xx reply is a plain error carrying the
// status and message.
func (c *Client) Render(ctx context.Context, req domain.NotificationRequest) (domain.DeliveryResult, error) {
	var (
		path string
		body any
	)
	switch req.Kind {
	case domain.KindVendorConfirmation:
		path = VendorNotificationPath
		body = VendorRequest{QuoteID: req.QuoteID, VendorEmail: req.Recipient, VendorName: req.VendorName, QuoteData: req.Quote}
	case domain.KindOwnerAlert:
		path = OwnerNotificationPath
		body = OwnerRequest{QuoteID: req.QuoteID, OwnerEmail: req.Recipient, VendorName: req.VendorName, QuoteData: req.Quote}
	default:
		return domain.DeliveryResult{}, fmt.Errorf("notify.Client.Render: unknown notification kind %q", req.Kind)
	}

	result := new(domain.DeliveryResult)
	apiErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(apiErr).
		Post(path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.DeliveryResult{}, fmt.Errorf("notify.Client.Render: %w", err)
		}
		return domain.DeliveryResult{}, fmt.Errorf("notify.Client.Render: %w: email service: %v", domain.ErrUnavailable, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return domain.DeliveryResult{}, fmt.Errorf("notify.Client.Render: email service returned %d: %s", resp.StatusCode(), msg)
	}
	return *result, nil
}

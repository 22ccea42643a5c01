package emailhandler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/emailhandler"
	"github.com/pkordes/bluelotus-quotes/internal/httpx"
	"github.com/pkordes/bluelotus-quotes/internal/notify"
)

type call struct {
	to, vendorName string
	quote          domain.QuotePayload
}

type mockMailer struct {
	vendor func(ctx context.Context, to, vendorName string, q domain.QuotePayload) domain.DeliveryResult
	owner  func(ctx context.Context, to, vendorName string, q domain.QuotePayload) domain.DeliveryResult
}

func (m *mockMailer) SendVendorConfirmation(ctx context.Context, to, vendorName string, q domain.QuotePayload) domain.DeliveryResult {
	return m.vendor(ctx, to, vendorName, q)
}
func (m *mockMailer) SendOwnerNotification(ctx context.Context, to, vendorName string, q domain.QuotePayload) domain.DeliveryResult {
	return m.owner(ctx, to, vendorName, q)
}

var _ emailhandler.Mailer = (*mockMailer)(nil)

func recordingMailer(calls *[]call, res domain.DeliveryResult) *mockMailer {
	record := func(_ context.Context, to, vendorName string, q domain.QuotePayload) domain.DeliveryResult {
		*calls = append(*calls, call{to: to, vendorName: vendorName, quote: q})
		return res
	}
	return &mockMailer{vendor: record, owner: record}
}

func serve(srv *emailhandler.Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := emailhandler.NewServer(nil)

	for _, path := range []string{"/health", "/email/health"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(srv, http.MethodGet, path, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "healthy", body["status"])
			assert.Equal(t, "bluelotusfoods-email", body["service"])
		})
	}
}

func TestRoot(t *testing.T) {
	rec := serve(emailhandler.NewServer(nil), http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Blue Lotus Foods Email Service", body["message"])
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestVendorNotification(t *testing.T) {
	var calls []call
	srv := emailhandler.NewServer(recordingMailer(&calls, domain.DeliveryResult{
		Success: true, Message: "Email sent successfully", EmailID: "quote_42",
	}))

	rec := serve(srv, http.MethodPost, "/email/vendor-notification", strings.NewReader(`{
		"quote_id": 42,
		"vendor_email": "sales@acme.example",
		"vendor_name": "Acme Foods",
		"quote_data": {"vendor_name": "Acme Foods", "fish_type": "Salmon"}
	}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body domain.DeliveryResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "quote_42", body.EmailID)

	require.Len(t, calls, 1)
	assert.Equal(t, "sales@acme.example", calls[0].to)
	assert.Equal(t, "Acme Foods", calls[0].vendorName)
	assert.Equal(t, int64(42), calls[0].quote.QuoteID)
	assert.Equal(t, "Salmon", calls[0].quote.FishType)
}

func TestVendorNotification_LogicalFailureIs200(t *testing.T) {
	var calls []call
	srv := emailhandler.NewServer(recordingMailer(&calls, domain.DeliveryResult{
		Message: "Email service not configured (missing SMTP credentials)",
	}))

	rec := serve(srv, http.MethodPost, "/email/vendor-notification", strings.NewReader(
		`{"quote_id":42,"vendor_email":"sales@acme.example","vendor_name":"Acme Foods","quote_data":{}}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var body domain.DeliveryResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Email service not configured (missing SMTP credentials)", body.Message)
}

func TestVendorNotification_InvalidBody(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing email", `{"quote_id":42,"vendor_name":"Acme Foods"}`, "vendor_email is required"},
		{"bad email", `{"quote_id":42,"vendor_email":"nope","vendor_name":"Acme Foods"}`, "valid email"},
		{"missing quote id", `{"vendor_email":"sales@acme.example","vendor_name":"Acme Foods"}`, "quote_id is required"},
		{"not json", `{`, "invalid JSON body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls []call
			srv := emailhandler.NewServer(recordingMailer(&calls, domain.DeliveryResult{}))

			rec := serve(srv, http.MethodPost, "/email/vendor-notification", strings.NewReader(tc.body))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			var body httpx.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "validation_error", body.Error.Code)
			assert.Contains(t, body.Error.Message, tc.want)
			assert.Empty(t, calls)
		})
	}
}

func TestOwnerNotification(t *testing.T) {
	var calls []call
	srv := emailhandler.NewServer(recordingMailer(&calls, domain.DeliveryResult{
		Success: true, Message: "Owner notification email sent successfully", EmailID: "owner_notification_quote_42",
	}))

	rec := serve(srv, http.MethodPost, "/email/owner-notification", strings.NewReader(
		`{"quote_id":42,"owner_email":"owner@bluelotusfoods.example","vendor_name":"Acme Foods","quote_data":{"quote_id":42}}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body domain.DeliveryResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "owner_notification_quote_42", body.EmailID)

	require.Len(t, calls, 1)
	assert.Equal(t, "owner@bluelotusfoods.example", calls[0].to)
}

func TestTestEmail(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			var calls []call
			srv := emailhandler.NewServer(recordingMailer(&calls, domain.DeliveryResult{
				Message: "Failed to send email: dial tcp: connection refused",
			}))

			rec := serve(srv, method, "/test/test-email", nil)

			require.Equal(t, http.StatusOK, rec.Code)
			var body domain.DeliveryResult
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, "Failed to send email: dial tcp: connection refused", body.Message)

			require.Len(t, calls, 1)
			assert.Equal(t, "test@example.com", calls[0].to)
			assert.Equal(t, "Test Vendor", calls[0].vendorName)
			assert.Equal(t, int64(1), calls[0].quote.QuoteID)
			assert.Equal(t, "TEST", calls[0].quote.VendorCode)
			assert.Equal(t, "USA", calls[0].quote.CountryOfOrigin)
			assert.Empty(t, calls[0].quote.Sizes)
		})
	}
}

func TestOwnerNotification_InvalidBody(t *testing.T) {
	var calls []call
	srv := emailhandler.NewServer(recordingMailer(&calls, domain.DeliveryResult{}))

	rec := serve(srv, http.MethodPost, "/email/owner-notification", strings.NewReader(
		`{"quote_id":42,"owner_email":"not-an-address","vendor_name":"Acme Foods"}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	var body httpx.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Error.Message, "owner_email must be a valid email address")
	assert.Empty(t, calls)
}

func TestNotification_TopLevelQuoteIDWins(t *testing.T) {
	var calls []call
	srv := emailhandler.NewServer(recordingMailer(&calls, domain.DeliveryResult{Success: true}))

	rec := serve(srv, http.MethodPost, "/email/owner-notification", strings.NewReader(
		`{"quote_id":42,"owner_email":"owner@bluelotusfoods.example","vendor_name":"Acme Foods","quote_data":{"quote_id":7}}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, calls, 1)
	assert.Equal(t, int64(42), calls[0].quote.QuoteID)
}

// The API's notify.Client and this server keep separate request types; both
// must agree on the wire.
func TestNotification_AcceptsNotifyClientRequests(t *testing.T) {
	var calls []call
	ts := httptest.NewServer(emailhandler.NewServer(recordingMailer(&calls, domain.DeliveryResult{
		Success: true, Message: "Email sent successfully", EmailID: "quote_42",
	})).Routes())
	defer ts.Close()
	client := notify.NewClient(ts.URL, time.Second)

	for _, tc := range []struct {
		kind      domain.NotificationKind
		recipient string
	}{
		{domain.KindVendorConfirmation, "sales@acme.example"},
		{domain.KindOwnerAlert, "owner@bluelotusfoods.example"},
	} {
		res, err := client.Render(context.Background(), domain.NotificationRequest{
			Kind:       tc.kind,
			QuoteID:    42,
			Recipient:  tc.recipient,
			VendorName: "Acme Foods",
			Quote:      domain.QuotePayload{VendorName: "Acme Foods", FishType: "Salmon"},
		})
		require.NoError(t, err, tc.kind)
		assert.True(t, res.Success)
	}

	require.Len(t, calls, 2)
	for i, want := range []string{"sales@acme.example", "owner@bluelotusfoods.example"} {
		assert.Equal(t, want, calls[i].to)
		assert.Equal(t, "Acme Foods", calls[i].vendorName)
		assert.Equal(t, int64(42), calls[i].quote.QuoteID)
		assert.Equal(t, "Salmon", calls[i].quote.FishType)
	}
}

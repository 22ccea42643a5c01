package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
	"github.com/pkordes/bluelotus-quotes/internal/handler"
	"github.com/pkordes/bluelotus-quotes/internal/httpx"
)

// Test doubles for the handler's servicer interfaces.
// Set only the method fields your test needs.

type mockReferenceServicer struct {
	listDictionary func(ctx context.Context, category string) ([]domain.DictionaryEntry, error)
	getVendor      func(ctx context.Context, code string) (domain.VendorProfile, error)
	listFishTypes  func(ctx context.Context) ([]domain.FishSpecies, error)
	listFishCuts   func(ctx context.Context) ([]domain.FishCut, error)
	listFishGrades func(ctx context.Context) ([]domain.FishGrade, error)
}

func (m *mockReferenceServicer) ListDictionary(ctx context.Context, category string) ([]domain.DictionaryEntry, error) {
	return m.listDictionary(ctx, category)
}
func (m *mockReferenceServicer) GetVendor(ctx context.Context, code string) (domain.VendorProfile, error) {
	return m.getVendor(ctx, code)
}
func (m *mockReferenceServicer) ListFishTypes(ctx context.Context) ([]domain.FishSpecies, error) {
	return m.listFishTypes(ctx)
}
func (m *mockReferenceServicer) ListFishCuts(ctx context.Context) ([]domain.FishCut, error) {
	return m.listFishCuts(ctx)
}
func (m *mockReferenceServicer) ListFishGrades(ctx context.Context) ([]domain.FishGrade, error) {
	return m.listFishGrades(ctx)
}

type mockQuoteServicer struct {
	submit func(ctx context.Context, sub domain.QuoteSubmission) (domain.QuoteReceipt, error)
	get    func(ctx context.Context, id int64) (domain.QuoteSnapshot, error)
	delete func(ctx context.Context, id int64) error
}

func (m *mockQuoteServicer) Submit(ctx context.Context, sub domain.QuoteSubmission) (domain.QuoteReceipt, error) {
	return m.submit(ctx, sub)
}
func (m *mockQuoteServicer) Get(ctx context.Context, id int64) (domain.QuoteSnapshot, error) {
	return m.get(ctx, id)
}
func (m *mockQuoteServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockNotificationServicer struct {
	sendVendor func(ctx context.Context, quoteID int64) (domain.NotificationOutcome, error)
	sendOwner  func(ctx context.Context, quoteID int64) (domain.NotificationOutcome, error)
	history    func(ctx context.Context, quoteID int64) ([]domain.EmailLogEntry, error)
}

func (m *mockNotificationServicer) SendVendorConfirmation(ctx context.Context, quoteID int64) (domain.NotificationOutcome, error) {
	return m.sendVendor(ctx, quoteID)
}
func (m *mockNotificationServicer) SendOwnerAlert(ctx context.Context, quoteID int64) (domain.NotificationOutcome, error) {
	return m.sendOwner(ctx, quoteID)
}
func (m *mockNotificationServicer) History(ctx context.Context, quoteID int64) ([]domain.EmailLogEntry, error) {
	return m.history(ctx, quoteID)
}

// compile-time checks.
var (
	_ handler.ReferenceServicer    = (*mockReferenceServicer)(nil)
	_ handler.QuoteServicer        = (*mockQuoteServicer)(nil)
	_ handler.NotificationServicer = (*mockNotificationServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// serve runs one request through the Server's router, as main.go wires it.
func serve(srv *handler.Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpx.ErrorDetail {
	t.Helper()
	var body httpx.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

// assertStatus fails with the response body so mismatches are debuggable.
func assertStatus(t *testing.T, want int, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}

package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
	"github.com/rezonia/facturx/internal/server"
)

func newTestServer() *server.Server {
	config := &server.Config{
		Address: ":8080",
		Debug:   true,
		Logger:  zerolog.Nop(),
	}
	return server.NewServer(config)
}

func minimumXML(t testing.TB) []byte {
	t.Helper()
	inv := &model.MinimumInvoice{
		InvoiceNumber: "471102",
		TypeCode:      codes.Invoice,
		InvoiceDate:   time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Seller: model.TradeParty{
			Name:    "Lieferant GmbH",
			Address: &model.PostalAddress{CountryCode: "DE"},
			VATID:   "DE123456789",
		},
		Buyer:         model.TradeParty{Name: "Kunden AG Mitte"},
		CurrencyCode:  "EUR",
		TaxBasisTotal: money.MustNew("198.00", "EUR"),
		TaxTotals:     []money.Money{money.MustNew("37.62", "EUR")},
		GrandTotal:    money.MustNew("235.62", "EUR"),
		DuePayable:    money.MustNew("235.62", "EUR"),
	}
	xml, err := cii.GenerateString(inv)
	require.NoError(t, err)
	return []byte(xml)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestParseEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewReader(minimumXML(t)))
	req.Header.Set("Content-Type", "application/xml")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ParseResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "MINIMUM", response.Profile)
	invoice, ok := response.Invoice.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "471102", invoice["InvoiceNumber"])
}

func TestParseEndpoint_EmptyBody(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseEndpoint_NotAnInvoice(t *testing.T) {
	srv := newTestServer()

	body := []byte(`<?xml version="1.0"?><invoice><total>12</total></invoice>`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response server.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "not-invoice", response.Kind)
}

func TestParseEndpoint_MalformedXML(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewReader([]byte("not xml")))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", bytes.NewReader(minimumXML(t)))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ValidationResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response.Valid)
	assert.Equal(t, "MINIMUM", response.Profile)
}

func TestValidateEndpoint_Invalid(t *testing.T) {
	srv := newTestServer()

	xml := bytes.Replace(minimumXML(t),
		[]byte("<ram:TypeCode>380</ram:TypeCode>"),
		[]byte("<ram:TypeCode>999</ram:TypeCode>"), 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", bytes.NewReader(xml))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response server.ValidationResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.False(t, response.Valid)
	assert.Equal(t, "invalid-document", response.Kind)
	assert.NotEmpty(t, response.Errors)
}

func TestExtractEndpoint_NotPDF(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewReader([]byte("not a pdf")))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func BenchmarkParse(b *testing.B) {
	srv := newTestServer()
	xml := minimumXML(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewReader(xml))
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
	}
}

package payment

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chillnow/chillnow-client/internal/config"
	"github.com/chillnow/chillnow-client/internal/models"
)

func testCinetPayCfg() config.CinetPayConfig {
	return config.CinetPayConfig{
		APIKey:   "key-123",
		SiteID:   "site-456",
		Mode:     "SANDBOX",
		Currency: "XOF",
	}
}

func postMessage(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestNormalizeType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		want     Status
		terminal bool
	}{
		{"SUCCESS", StatusSuccess, true},
		{"payment_success", StatusSuccess, true},
		{"ERROR", StatusFailed, true},
		{"payment_failed", StatusFailed, true},
		{"CLOSE", StatusClosed, true},
		{"payment_closed", StatusClosed, true},
		{"PENDING", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, terminal := NormalizeType(tc.in)
		require.Equal(t, tc.terminal, terminal, "type %q", tc.in)
		require.Equal(t, tc.want, got, "type %q", tc.in)
	}
}

func TestNewCheckout(t *testing.T) {
	t.Parallel()

	p := &models.PaymentResponse{
		ID:            "pay-1",
		MontantTotal:  10000,
		MontantAvance: 3000,
		TauxAvance:    30,
	}
	billing := models.BillingInfo{
		FirstName: "Awa",
		LastName:  "Koné",
		Email:     "user@example.com",
		Phone:     "+2250700000000",
		City:      "Abidjan",
	}

	co := NewCheckout(testCinetPayCfg(), p, "Réservation table", billing)

	require.Equal(t, "key-123", co.APIKey)
	require.Equal(t, "site-456", co.SiteID)
	require.Equal(t, "SANDBOX", co.Mode)
	require.Equal(t, "pay-1", co.TransactionID)
	// Через шлюз идёт аванс, не полная сумма.
	require.Equal(t, float64(3000), co.Amount)
	require.Equal(t, "XOF", co.Currency)
	require.Equal(t, "ALL", co.Channels)
	require.Equal(t, "Awa", co.CustomerName)
	require.Equal(t, "CI", co.CustomerCountry)
}

func TestNewCheckout_FallbackTransactionID(t *testing.T) {
	t.Parallel()

	co := NewCheckout(testCinetPayCfg(), nil, "", models.BillingInfo{})
	require.NotEmpty(t, co.TransactionID)
	require.Zero(t, co.Amount)

	co2 := NewCheckout(testCinetPayCfg(), &models.PaymentResponse{}, "", models.BillingInfo{})
	require.NotEmpty(t, co2.TransactionID)
	require.NotEqual(t, co.TransactionID, co2.TransactionID)
}

func TestBridge_SuccessMessage(t *testing.T) {
	t.Parallel()

	b, err := NewBridge(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	resp := postMessage(t, b.URL(), `{"type":"SUCCESS","data":{"transaction_id":"pay-1"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := b.WaitResult(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, res.Status)
	require.JSONEq(t, `{"transaction_id":"pay-1"}`, string(res.Data))
}

func TestBridge_NonTerminalIgnored(t *testing.T) {
	t.Parallel()

	b, err := NewBridge(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	resp := postMessage(t, b.URL(), `{"type":"PENDING"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = postMessage(t, b.URL(), `{"type":"payment_closed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := b.WaitResult(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusClosed, res.Status)
}

func TestBridge_FirstTerminalWins(t *testing.T) {
	t.Parallel()

	b, err := NewBridge(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	postMessage(t, b.URL(), `{"type":"ERROR"}`)
	postMessage(t, b.URL(), `{"type":"SUCCESS"}`)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := b.WaitResult(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusFailed, res.Status)
}

func TestBridge_BadMessage(t *testing.T) {
	t.Parallel()

	b, err := NewBridge(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	resp := postMessage(t, b.URL(), `{not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBridge_WaitResult_ContextCanceled(t *testing.T) {
	t.Parallel()

	b, err := NewBridge(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = b.WaitResult(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBridge_Close_UnblocksWaiters(t *testing.T) {
	t.Parallel()

	b, err := NewBridge(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := b.WaitResult(context.Background())
		done <- err
	}()

	require.NoError(t, b.Close())
	require.NoError(t, b.Close()) // идемпотентен

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrBridgeClosed)
	case <-time.After(time.Second):
		t.Fatal("WaitResult не разблокировался после Close")
	}
}

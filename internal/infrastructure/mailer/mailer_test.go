package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotification() *usecase.Notification {
	return &usecase.Notification{
		EventID: uuid.New(),
		OrderID: uuid.New(),
		To:      "ann@example.com",
		Subject: "Order update #abcdef12 - Shop",
		Body:    "<p>Shipped</p>",
	}
}

func TestHTTPMailer_Send(t *testing.T) {
	var got sendEmailReq
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewHTTPMailer(&cfg.MailerCfg{URL: srv.URL, APIKey: "secret", From: "Shop <shop@example.com>", Timeout: time.Second}, logger.Nop())

	require.NoError(t, m.Send(context.Background(), testNotification()))
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "Shop <shop@example.com>", got.From)
	assert.Equal(t, []string{"ann@example.com"}, got.To)
	assert.Equal(t, "Order update #abcdef12 - Shop", got.Subject)
	assert.Equal(t, "<p>Shipped</p>", got.HTML)
}

func TestHTTPMailer_SendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewHTTPMailer(&cfg.MailerCfg{URL: srv.URL, Timeout: time.Second}, logger.Nop())

	err := m.Send(context.Background(), testNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestHTTPMailer_BreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	m := NewHTTPMailer(&cfg.MailerCfg{URL: srv.URL, Timeout: time.Second}, logger.Nop())

	for range breakerFailures {
		require.Error(t, m.Send(context.Background(), testNotification()))
	}

	err := m.Send(context.Background(), testNotification())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(breakerFailures), calls.Load())
}

func TestNew_SelectsImplementation(t *testing.T) {
	assert.IsType(t, &LogMailer{}, New(&cfg.MailerCfg{}, logger.Nop()))
	assert.IsType(t, &HTTPMailer{}, New(&cfg.MailerCfg{URL: "http://mail"}, logger.Nop()))
	assert.NoError(t, NewLogMailer(logger.Nop()).Send(context.Background(), testNotification()))
}

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/sony/gobreaker/v2"
)

const (
	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

// sendEmailReq — тело запроса к почтовому API.
type sendEmailReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// HTTPMailer отправляет письма через HTTP API с авторизацией по bearer-ключу.
// После breakerFailures ошибок подряд запросы не отправляются breakerCooldown.
type HTTPMailer struct {
	client  *http.Client
	cfg     *cfg.MailerCfg
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewHTTPMailer(cfg *cfg.MailerCfg, logger logger.Logger) *HTTPMailer {
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "mailer",
		Timeout: breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &HTTPMailer{
		client:  &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		breaker: breaker,
	}
}

func (m *HTTPMailer) Send(ctx context.Context, n *usecase.Notification) error {
	_, err := m.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, m.send(ctx, n)
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (m *HTTPMailer) send(ctx context.Context, n *usecase.Notification) error {
	body, err := json.Marshal(sendEmailReq{
		From:    m.cfg.From,
		To:      []string{n.To},
		Subject: n.Subject,
		HTML:    n.Body,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("mail api status %d: %s", resp.StatusCode, bytes.TrimSpace(msg)))
	}

	return nil
}

// LogMailer пишет письма в лог. Используется, когда почтовый API не настроен.
type LogMailer struct {
	logger logger.Logger
}

func NewLogMailer(logger logger.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, n *usecase.Notification) error {
	m.logger.Infof("Email to %s: %s (order %s)", n.To, n.Subject, n.OrderID)
	return nil
}

// New выбирает реализацию по конфигурации.
func New(cfg *cfg.MailerCfg, logger logger.Logger) usecase.Mailer {
	if cfg.URL == "" {
		logger.Warnf("MAILER_URL is not set, emails will only be logged")
		return NewLogMailer(logger)
	}

	return NewHTTPMailer(cfg, logger)
}

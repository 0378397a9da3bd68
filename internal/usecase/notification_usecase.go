package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

const defaultCustomerName = "Customer"

var statusMessages = map[domain.OrderStatus]string{
	domain.OrderStatusProcessing: "Your order is being prepared.",
	domain.OrderStatusShipped:    "Your order has been shipped!",
	domain.OrderStatusDelivered:  "Your order has been delivered. Thank you!",
	domain.OrderStatusCancelled:  "Your order has been cancelled.",
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #333;">
<h1>{{.StoreName}}</h1>
<h2>{{.Title}}</h2>
<p>Hello <strong>{{.CustomerName}}</strong>,</p>
{{if .Intro}}<p>{{.Intro}}</p>{{end}}
{{if .Status}}<p><strong>{{.Status}}</strong></p>{{end}}
<table>
<tr><td>Order number</td><td>#{{.ShortID}}</td></tr>
{{if .Date}}<tr><td>Date</td><td>{{.Date}}</td></tr>{{end}}
<tr><td>Total</td><td>{{.Total}}</td></tr>
<tr><td>Shipping address</td><td>{{.Address}}</td></tr>
</table>
{{if .Outro}}<p>{{.Outro}}</p>{{end}}
{{if .TrackURL}}<p><a href="{{.TrackURL}}">Track my order</a></p>{{end}}
</body>
</html>
`))

type emailData struct {
	StoreName    string
	Title        string
	CustomerName string
	Intro        string
	Status       string
	ShortID      string
	Date         string
	Total        string
	Address      string
	Outro        string
	TrackURL     string
}

// NotificationUseCase отправляет покупателю письма о событиях заказа.
// Ошибки уведомлений не влияют на состояние заказа.
type NotificationUseCase struct {
	profileRepo ProfileRepository
	mailer      Mailer
	archive     NotificationArchive
	logger      logger.Logger
	storeName   string
	trackURL    string
}

func NewNotificationUC(
	profileRepo ProfileRepository,
	mailer Mailer,
	archive NotificationArchive,
	logger logger.Logger,
	storeName string,
	trackURL string,
) *NotificationUseCase {
	return &NotificationUseCase{
		profileRepo: profileRepo,
		mailer:      mailer,
		archive:     archive,
		logger:      logger,
		storeName:   storeName,
		trackURL:    trackURL,
	}
}

// HandleOrderEvent формирует и отправляет письмо по событию.
// Возвращает ошибку только при сбое отправки, чтобы сообщение было прочитано повторно.
func (n *NotificationUseCase) HandleOrderEvent(ctx context.Context, event *OrderEvent) error {
	const op = "NotificationUseCase.HandleOrderEvent"

	if event.Type == EventOrderStatusChanged && event.Status == event.PreviousStatus {
		return nil
	}
	if event.Type != EventOrderCreated && event.Type != EventOrderStatusChanged {
		n.logger.Debugf("Skipping unsupported order event type: %s", event.Type)
		return nil
	}

	profile, err := n.profileRepo.Get(ctx, event.CustomerID)
	if err != nil {
		if errors.Is(err, e.ErrProfileNotFound) {
			n.logger.Warnf("No profile for customer %s, notification for order %s skipped", event.CustomerID, event.OrderID)
			return nil
		}
		return e.Wrap(op, err)
	}
	if strings.TrimSpace(profile.Email) == "" {
		n.logger.Warnf("Customer %s has no email, notification for order %s skipped", event.CustomerID, event.OrderID)
		return nil
	}

	notification, err := n.Render(event, profile)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := n.mailer.Send(ctx, notification); err != nil {
		return e.Wrap(op, err)
	}
	n.logger.Infof("Notification sent. order_id: %s, event: %s, to: %s", event.OrderID, event.Type, notification.To)

	if n.archive != nil {
		if _, err := n.archive.Store(ctx, notification); err != nil {
			n.logger.Warnf("Failed to archive notification: %v", e.Wrap(op, err))
		}
	}

	return nil
}

// Render строит тему и HTML письма для события.
func (n *NotificationUseCase) Render(event *OrderEvent, profile *domain.CustomerProfile) (*Notification, error) {
	shortID := event.OrderID.String()[:8]

	name := strings.TrimSpace(profile.FullName)
	if name == "" {
		name = defaultCustomerName
	}

	data := emailData{
		StoreName:    n.storeName,
		CustomerName: name,
		ShortID:      shortID,
		Total:        event.Total.StringFixed(2),
		Address:      event.ShippingAddress,
		TrackURL:     n.trackURL,
	}

	var subject string
	switch event.Type {
	case EventOrderCreated:
		subject = fmt.Sprintf("Order confirmation #%s - %s", shortID, n.storeName)
		data.Title = "Order confirmed!"
		data.Intro = "Thank you for your order! We have received it and are preparing it with care."
		data.Date = event.OrderCreatedAt.Format("2006-01-02")
		data.Outro = "You will receive another email as soon as your order ships."
	default:
		subject = fmt.Sprintf("Order update #%s - %s", shortID, n.storeName)
		data.Title = "Status update"
		data.Intro = fmt.Sprintf("There is news about your order #%s.", shortID)
		data.Status = StatusMessage(event.Status)
	}

	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, data); err != nil {
		return nil, err
	}

	return &Notification{
		EventID: event.EventID,
		OrderID: event.OrderID,
		To:      profile.Email,
		Subject: subject,
		Body:    body.String(),
	}, nil
}

// StatusMessage — текст для покупателя о новом статусе.
func StatusMessage(status domain.OrderStatus) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}

	return "New status: " + status.String()
}

package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/infrastructure"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

const notificationContentType = "text/html; charset=utf-8"

// ObjectPutter — часть minio.Client, нужная архиву.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader,
		objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// NotificationRepo архивирует отправленные покупателям письма в MinIO.
type NotificationRepo struct {
	mc  ObjectPutter
	cfg *cfg.MinIOCfg
}

func NewNotificationRepo(mc ObjectPutter, cfg *cfg.MinIOCfg) *NotificationRepo {
	return &NotificationRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Store сохраняет тело письма под ключом orders/<orderID>/<eventID>.html и возвращает ключ объекта.
// Повторная доставка события перезаписывает тот же объект.
func (n *NotificationRepo) Store(ctx context.Context, notification *usecase.Notification) (string, error) {
	ext, err := infrastructure.GetExtensionFromMIME(notificationContentType)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	key := fmt.Sprintf("orders/%s/%s.%s", notification.OrderID, notification.EventID, ext)
	body := []byte(notification.Body)

	info, err := n.mc.PutObject(ctx, n.cfg.BucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: notificationContentType,
		UserMetadata: map[string]string{
			"subject":   notification.Subject,
			"recipient": notification.To,
		},
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

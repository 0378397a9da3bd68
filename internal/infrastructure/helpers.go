package infrastructure

import (
	"mime"

	"github.com/DRSN-tech/storefront/pkg/e"
)

// GetExtensionFromMIME возвращает расширение файла по MIME-типу архивируемого письма.
// Параметры типа (charset) игнорируются. Для неподдерживаемых типов возвращает e.ErrUnsupportedMediaType.
func GetExtensionFromMIME(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "bin", e.ErrUnsupportedMediaType
	}

	switch mediaType {
	case "text/html":
		return "html", nil
	case "text/plain":
		return "txt", nil
	case "application/json":
		return "json", nil
	default:
		return "bin", e.ErrUnsupportedMediaType
	}
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category описывает категорию каталога
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

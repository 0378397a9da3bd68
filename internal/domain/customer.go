package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CustomerProfile — профиль покупателя, используется для предзаполнения доставки.
type CustomerProfile struct {
	ID         uuid.UUID
	Email      string
	FullName   string
	Phone      string
	Address    string
	City       string
	PostalCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProfileUpdate — изменяемые поля профиля.
type ProfileUpdate struct {
	FullName   string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// ShippingDetails — контактные данные и адрес доставки заказа.
type ShippingDetails struct {
	FullName   string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// FlattenAddress собирает адрес в одну строку: "address, city, postalCode".
func (s ShippingDetails) FlattenAddress() string {
	return strings.TrimSpace(s.Address) + ", " + strings.TrimSpace(s.City) + ", " + strings.TrimSpace(s.PostalCode)
}

// WithDefaults заполняет пустые поля значениями из профиля.
func (s ShippingDetails) WithDefaults(p *CustomerProfile) ShippingDetails {
	if p == nil {
		return s
	}

	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&s.FullName, p.FullName)
	fill(&s.Phone, p.Phone)
	fill(&s.Address, p.Address)
	fill(&s.City, p.City)
	fill(&s.PostalCode, p.PostalCode)

	return s
}

package converter

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует товар с размерами в модель кэша и обратно.
type ProductConverter interface {
	ToRedisModel(entity *domain.ProductDetails) *ProductRedisModel
	ToEntity(model *ProductRedisModel) (*domain.ProductDetails, error)
}

type ProductConv struct{}

func (ProductConv) ToRedisModel(d *domain.ProductDetails) *ProductRedisModel {
	p := d.Product
	m := &ProductRedisModel{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice.String(),
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
	}
	if p.CategoryID != nil {
		m.CategoryID = p.CategoryID.String()
	}

	for _, s := range d.Sizes {
		m.Sizes = append(m.Sizes, SizeRedisModel{
			ID:            s.ID.String(),
			SizeName:      s.SizeName,
			PriceModifier: s.PriceModifier.String(),
			Stock:         s.Stock,
		})
	}

	return m
}

func (ProductConv) ToEntity(m *ProductRedisModel) (*domain.ProductDetails, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(m.BasePrice)
	if err != nil {
		return nil, err
	}

	d := &domain.ProductDetails{
		Product: domain.Product{
			ID:          id,
			Name:        m.Name,
			Description: m.Description,
			BasePrice:   price,
			ImageURL:    m.ImageURL,
			Stock:       m.Stock,
			Available:   m.Available,
			CreatedAt:   m.CreatedAt,
		},
	}

	if m.CategoryID != "" {
		categoryID, err := uuid.Parse(m.CategoryID)
		if err != nil {
			return nil, err
		}
		d.Product.CategoryID = &categoryID
	}

	for _, s := range m.Sizes {
		sizeID, err := uuid.Parse(s.ID)
		if err != nil {
			return nil, err
		}

		modifier, err := decimal.NewFromString(s.PriceModifier)
		if err != nil {
			return nil, err
		}

		d.Sizes = append(d.Sizes, domain.ProductSize{
			ID:            sizeID,
			ProductID:     id,
			SizeName:      s.SizeName,
			PriceModifier: modifier,
			Stock:         s.Stock,
		})
	}

	return d, nil
}

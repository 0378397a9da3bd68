package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

type ProfileUseCase struct {
	profileRepo ProfileRepository
	logger      logger.Logger
}

func NewProfileUC(profileRepo ProfileRepository, logger logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (p *ProfileUseCase) GetProfile(ctx context.Context, customerID uuid.UUID) (*domain.CustomerProfile, error) {
	const op = "ProfileUseCase.GetProfile"

	if customerID == uuid.Nil {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	profile, err := p.profileRepo.Get(ctx, customerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return profile, nil
}

// UpdateProfile сохраняет контактные данные; строки обрезаются по краям.
func (p *ProfileUseCase) UpdateProfile(ctx context.Context, customerID uuid.UUID, upd domain.ProfileUpdate) (*domain.CustomerProfile, error) {
	const op = "ProfileUseCase.UpdateProfile"

	if customerID == uuid.Nil {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	upd = domain.ProfileUpdate{
		FullName:   strings.TrimSpace(upd.FullName),
		Phone:      strings.TrimSpace(upd.Phone),
		Address:    strings.TrimSpace(upd.Address),
		City:       strings.TrimSpace(upd.City),
		PostalCode: strings.TrimSpace(upd.PostalCode),
	}

	profile, err := p.profileRepo.Update(ctx, customerID, upd)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return profile, nil
}

// ShippingFromProfile дополняет пустые поля доставки данными профиля.
// Отсутствие профиля не ошибка: детали возвращаются как есть.
func (p *ProfileUseCase) ShippingFromProfile(ctx context.Context, customerID uuid.UUID, shipping domain.ShippingDetails) (domain.ShippingDetails, error) {
	const op = "ProfileUseCase.ShippingFromProfile"

	if customerID == uuid.Nil {
		return shipping, nil
	}

	profile, err := p.profileRepo.Get(ctx, customerID)
	switch {
	case err == nil:
		return shipping.WithDefaults(profile), nil
	case errors.Is(err, e.ErrProfileNotFound):
		return shipping, nil
	default:
		return shipping, e.Wrap(op, err)
	}
}

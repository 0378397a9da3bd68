package pgdb

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const profileColumns = `id, email, full_name, phone, address, city, postal_code, created_at, updated_at`

// ProfileRepo реализует репозиторий профилей покупателей поверх PostgreSQL.
// Профиль создаётся сервисом аутентификации; здесь только чтение и обновление контактов.
type ProfileRepo struct {
	pool *pgxpool.Pool
	conv converter.ProfileConverter
}

func NewProfileRepo(pool *pgxpool.Pool, conv converter.ProfileConverter) *ProfileRepo {
	return &ProfileRepo{pool: pool, conv: conv}
}

func (p *ProfileRepo) Get(ctx context.Context, customerID uuid.UUID) (*domain.CustomerProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM customer_profiles WHERE id = $1;`

	model, err := p.scan(tr.Conn(ctx, p.pool).QueryRow(ctx, query, customerID))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), notFound(err, e.ErrProfileNotFound))
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProfileRepo) Update(ctx context.Context, customerID uuid.UUID, upd domain.ProfileUpdate) (*domain.CustomerProfile, error) {
	query := `
		UPDATE customer_profiles
		SET full_name = $2, phone = $3, address = $4, city = $5, postal_code = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns + `;
	`

	row := tr.Conn(ctx, p.pool).QueryRow(ctx, query,
		customerID, upd.FullName, upd.Phone, upd.Address, upd.City, upd.PostalCode,
	)

	model, err := p.scan(row)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), notFound(err, e.ErrProfileNotFound))
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProfileRepo) scan(row pgx.Row) (*converter.ProfileModel, error) {
	var m converter.ProfileModel
	if err := row.Scan(
		&m.ID, &m.Email, &m.FullName, &m.Phone, &m.Address,
		&m.City, &m.PostalCode, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &m, nil
}

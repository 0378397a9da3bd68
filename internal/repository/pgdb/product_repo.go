package pgdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `id, category_id, name, description, base_price, image_url, stock, available, created_at`

var productOrderBy = map[domain.ProductSort]string{
	domain.SortNewest:    "created_at DESC",
	domain.SortPriceLow:  "base_price ASC, created_at DESC",
	domain.SortPriceHigh: "base_price DESC, created_at DESC",
	domain.SortName:      "name ASC",
}

// ProductRepo реализует репозиторий товаров и их размеров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает доступные товары с фильтром по категории и подстроке имени.
func (p *ProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		conds = []string{"available = TRUE"}
		args  []any
	)

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	orderBy, ok := productOrderBy[filter.Sort]
	if !ok {
		orderBy = productOrderBy[domain.SortNewest]
	}

	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE %s ORDER BY %s;",
		productColumns, strings.Join(conds, " AND "), orderBy,
	)

	rows, err := tr.Conn(ctx, p.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetDetails возвращает товар вместе с размерами.
func (p *ProductRepo) GetDetails(ctx context.Context, id uuid.UUID) (*domain.ProductDetails, error) {
	details, err := p.GetDetailsByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	d, ok := details[id]
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return &d, nil
}

// GetDetailsByIDs возвращает найденные товары с размерами; отсутствующие id в результат не попадают.
// Недоступные товары тоже возвращаются, решение о них принимает вызывающий.
func (p *ProductRepo) GetDetailsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.ProductDetails, error) {
	result := make(map[uuid.UUID]domain.ProductDetails, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	conn := tr.Conn(ctx, p.pool)

	rows, err := conn.Query(ctx, "SELECT "+productColumns+" FROM products WHERE id = ANY($1);", ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result[model.ID] = domain.ProductDetails{Product: *p.conv.ToEntity(model)}
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	rows.Close()

	sizeQuery := `
		SELECT id, product_id, size_name, price_modifier, stock
		FROM product_sizes
		WHERE product_id = ANY($1)
		ORDER BY product_id, size_name;
	`

	sizeRows, err := conn.Query(ctx, sizeQuery, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer sizeRows.Close()

	for sizeRows.Next() {
		var model converter.ProductSizeModel
		if err := sizeRows.Scan(&model.ID, &model.ProductID, &model.SizeName, &model.PriceModifier, &model.Stock); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		d, ok := result[model.ProductID]
		if !ok {
			continue
		}
		d.Sizes = append(d.Sizes, p.conv.SizeToEntity(&model))
		result[model.ProductID] = d
	}
	if err := sizeRows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var m converter.ProductModel
	err := row.Scan(
		&m.ID, &m.CategoryID, &m.Name, &m.Description, &m.BasePrice,
		&m.ImageURL, &m.Stock, &m.Available, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// escapeLike экранирует спецсимволы шаблона LIKE.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

package redis

import (
	"context"
	"errors"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// CartRepo хранит сериализованную корзину сессии под ключом cart:<sessionID>.
type CartRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
}

func NewCartRepo(client *clients.RedisClient, cfg *cfg.RedisCfg) *CartRepo {
	return &CartRepo{client: client, cfg: cfg}
}

func (c *CartRepo) LoadCart(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := c.client.Client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

// SaveCart перезаписывает корзину и продлевает её TTL.
func (c *CartRepo) SaveCart(ctx context.Context, sessionID string, data []byte) error {
	if err := c.client.Client.Set(ctx, cartKey(sessionID), data, c.cfg.CartTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CartRepo) DeleteCart(ctx context.Context, sessionID string) error {
	if err := c.client.Client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

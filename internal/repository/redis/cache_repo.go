package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
	"github.com/sarabarbaraam/CompraBarbara/internal/cfg"
	"github.com/sarabarbaraam/CompraBarbara/internal/domain"
	"github.com/sarabarbaraam/CompraBarbara/internal/repository/redis/converter"
	"github.com/sarabarbaraam/CompraBarbara/pkg/clients"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/sarabarbaraam/CompraBarbara/pkg/logger"
)

// CacheRepo кэширует карточки товаров в Redis. Кэш вспомогательный:
// ошибки записи и удаления логируются, но не прерывают запрос.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ItemConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ItemConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetItem возвращает товар из кэша либо (nil, nil) при промахе.
func (c *CacheRepo) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	key := c.itemKey(id)

	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil // cache miss
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.ItemRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, nil
	}

	if model.ID != id {
		c.logger.Warnf("Cache ID mismatch: key_id: %d, model_id: %d", id, model.ID)
		if err := c.client.Client.Del(context.Background(), key).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	item, err := c.conv.ToEntity(&model)
	if err != nil {
		c.logger.Warnf("Corrupt cached item %d: %v", id, e.Wrap(whereami.WhereAmI(), err))
		return nil, nil
	}

	return item, nil
}

// SetItem кэширует товар с TTL из конфигурации.
func (c *CacheRepo) SetItem(ctx context.Context, item *domain.Item) error {
	data, err := json.Marshal(c.conv.ToRedisModel(item))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, c.itemKey(item.ID), data, c.cfg.ItemTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteItems удаляет товары из кэша по ID.
func (c *CacheRepo) DeleteItems(ctx context.Context, ids []int64) error {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.itemKey(id)
	}

	if err := c.client.Client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

func (c *CacheRepo) itemKey(id int64) string {
	return fmt.Sprintf("item:%d", id)
}

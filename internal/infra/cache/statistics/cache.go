package statistics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
	"github.com/m04kA/SMC-SeatLive/pkg/dbmetrics"
)

const defaultTTL = 5 * time.Minute

// Cache read-through кэш статистики в Redis поверх Store
// Ошибки Redis не ломают чтение: запрос уходит в Store.
// Внутри транзакции кэш не читается и не заполняется: незакоммиченные строки не должны попасть в Redis
type Cache struct {
	store  Store
	rdb    redis.UniversalClient
	ttl    time.Duration
	prefix string
	log    Logger
}

// NewCache создает кэширующую обёртку над store
func NewCache(store Store, rdb redis.UniversalClient, ttl time.Duration, prefix string, log Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		store:  store,
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
		log:    log,
	}
}

// WriteDetail пишет в Store и сбрасывает кэш недели
func (c *Cache) WriteDetail(ctx context.Context, week domain.WeekKey, day time.Time, records []domain.DetailRecord) error {
	if err := c.store.WriteDetail(ctx, week, day, records); err != nil {
		return err
	}
	c.invalidate(ctx, c.detailKey(week))
	return nil
}

// WriteAggregated пишет в Store и сбрасывает кэш недели
func (c *Cache) WriteAggregated(ctx context.Context, week domain.WeekKey, records []domain.AggregatedRecord) error {
	if err := c.store.WriteAggregated(ctx, week, records); err != nil {
		return err
	}
	c.invalidate(ctx, c.aggregatedKey(week))
	return nil
}

// ReadAllDetail читает detail_data недели из кэша или Store
func (c *Cache) ReadAllDetail(ctx context.Context, week domain.WeekKey) (map[string][]domain.DetailRecord, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return c.store.ReadAllDetail(ctx, week)
	}

	key := c.detailKey(week)

	var cached map[string][]cachedDetail
	if c.get(ctx, key, &cached) {
		result := make(map[string][]domain.DetailRecord, len(cached))
		for day, entries := range cached {
			records := make([]domain.DetailRecord, 0, len(entries))
			for _, e := range entries {
				records = append(records, domain.DetailRecord{
					DayDate:       e.DayDate,
					IntervalIndex: e.IntervalIndex,
					OccupiedCount: e.OccupiedCount,
					TotalSeats:    e.TotalSeats,
				})
			}
			result[day] = records
		}
		return result, nil
	}

	result, err := c.store.ReadAllDetail(ctx, week)
	if err != nil {
		return nil, err
	}

	toCache := make(map[string][]cachedDetail, len(result))
	for day, records := range result {
		entries := make([]cachedDetail, 0, len(records))
		for _, r := range records {
			entries = append(entries, cachedDetail{
				DayDate:       r.DayDate,
				IntervalIndex: r.IntervalIndex,
				OccupiedCount: r.OccupiedCount,
				TotalSeats:    r.TotalSeats,
			})
		}
		toCache[day] = entries
	}
	c.set(ctx, key, toCache)

	return result, nil
}

// ReadAggregated читает aggregated_data недели из кэша или Store
func (c *Cache) ReadAggregated(ctx context.Context, week domain.WeekKey) ([]domain.AggregatedRecord, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return c.store.ReadAggregated(ctx, week)
	}

	key := c.aggregatedKey(week)

	var cached []cachedAggregated
	if c.get(ctx, key, &cached) {
		records := make([]domain.AggregatedRecord, 0, len(cached))
		for _, e := range cached {
			records = append(records, domain.AggregatedRecord{
				Weekday:         time.Weekday(e.Weekday),
				IntervalIndex:   e.IntervalIndex,
				AverageOccupied: e.AverageOccupied,
			})
		}
		return records, nil
	}

	records, err := c.store.ReadAggregated(ctx, week)
	if err != nil {
		return nil, err
	}

	toCache := make([]cachedAggregated, 0, len(records))
	for _, r := range records {
		toCache = append(toCache, cachedAggregated{
			Weekday:         int(r.Weekday),
			IntervalIndex:   r.IntervalIndex,
			AverageOccupied: r.AverageOccupied,
		})
	}
	c.set(ctx, key, toCache)

	return records, nil
}

// InvalidateWeek сбрасывает detail и aggregated недели
// Вызывается после фиксации пересчета, который писал в Store напрямую
func (c *Cache) InvalidateWeek(ctx context.Context, week domain.WeekKey) {
	c.invalidate(ctx, c.detailKey(week))
	c.invalidate(ctx, c.aggregatedKey(week))
}

// Helper methods

func (c *Cache) detailKey(week domain.WeekKey) string {
	return fmt.Sprintf("%s:%s:detail", c.prefix, week)
}

func (c *Cache) aggregatedKey(week domain.WeekKey) string {
	return fmt.Sprintf("%s:%s:aggregated", c.prefix, week)
}

func (c *Cache) get(ctx context.Context, key string, out interface{}) bool {
	bs, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache: get %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(bs, out); err != nil {
		c.log.Warn("cache: corrupted entry %s: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, value interface{}) {
	bs, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache: encode %s failed: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, bs, c.ttl).Err(); err != nil {
		c.log.Warn("cache: set %s failed: %v", key, err)
	}
}

func (c *Cache) invalidate(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.log.Error("cache: invalidate %s failed: %v", key, err)
	}
}

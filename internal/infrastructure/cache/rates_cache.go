// Package cache guarda en Redis las últimas tasas conocidas para que la
// vista pública de precios no golpee PostgreSQL en cada consulta.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/multimovil/pos-api/pkg/config"
)

const (
	bcvRateKey      = "rates:bcv"
	parallelRateKey = "rates:parallel"
	updatedAtKey    = "rates:updated_at"
	rateEntryExpiry = 24 * time.Hour
)

// RatesCache cache de tasas sobre Redis. Un puntero nil es un cache apagado:
// todos los métodos son no-op y la lectura cae a la base de datos.
type RatesCache struct {
	rdb *redis.Client
}

// New construye el cache. Con Addr vacío devuelve nil (cache apagado).
func New(cfg config.RedisConfig) *RatesCache {
	if cfg.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RatesCache{rdb: rdb}
}

// SetRates guarda ambas tasas y su marca de tiempo.
func (c *RatesCache) SetRates(ctx context.Context, bcv, parallel decimal.Decimal, at time.Time) error {
	if c == nil {
		return nil
	}
	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, bcvRateKey, bcv.String(), rateEntryExpiry)
	pipe.Set(ctx, parallelRateKey, parallel.String(), rateEntryExpiry)
	pipe.Set(ctx, updatedAtKey, at.Format(time.RFC3339), rateEntryExpiry)
	_, err := pipe.Exec(ctx)
	return err
}

// SetBCVRate actualiza solo la tasa BCV y la marca de tiempo; el
// sincronizador no conoce la paralela. Si la entrada de la paralela ya
// expiró, la próxima lectura cae a la base y repuebla todo.
func (c *RatesCache) SetBCVRate(ctx context.Context, rate decimal.Decimal, at time.Time) error {
	if c == nil {
		return nil
	}
	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, bcvRateKey, rate.String(), rateEntryExpiry)
	pipe.Set(ctx, updatedAtKey, at.Format(time.RFC3339), rateEntryExpiry)
	_, err := pipe.Exec(ctx)
	return err
}

// GetRates devuelve las tasas cacheadas. ok=false si falta cualquier entrada
// (cache apagado, expirado o Redis caído): el llamador debe leer de la base.
func (c *RatesCache) GetRates(ctx context.Context) (bcv, parallel decimal.Decimal, at time.Time, ok bool) {
	if c == nil {
		return decimal.Zero, decimal.Zero, time.Time{}, false
	}
	vals, err := c.rdb.MGet(ctx, bcvRateKey, parallelRateKey, updatedAtKey).Result()
	if err != nil || len(vals) != 3 {
		return decimal.Zero, decimal.Zero, time.Time{}, false
	}
	bcv, okBCV := parseRate(vals[0])
	parallel, okParallel := parseRate(vals[1])
	if !okBCV || !okParallel {
		return decimal.Zero, decimal.Zero, time.Time{}, false
	}
	if raw, isStr := vals[2].(string); isStr {
		at, _ = time.Parse(time.RFC3339, raw)
	}
	return bcv, parallel, at, true
}

func parseRate(v any) (decimal.Decimal, bool) {
	raw, ok := v.(string)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// Close cierra la conexión con Redis.
func (c *RatesCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

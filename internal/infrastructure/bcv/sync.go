package bcv

import (
	"context"
	"time"

	"github.com/multimovil/pos-api/internal/domain/repository"
	"github.com/multimovil/pos-api/internal/infrastructure/cache"
	"github.com/multimovil/pos-api/pkg/logger"
)

// SyncConfig dependencias del sincronizador de tasa.
type SyncConfig struct {
	Client         *Client
	SettingsRepo   repository.SettingsRepository
	RatesCache     *cache.RatesCache // puede ser nil (cache apagado)
	Log            *logger.Logger
	Interval       time.Duration // cada cuánto se revisa
	StaleThreshold time.Duration // antigüedad que dispara el refresco
}

// StartSync lanza la goroutine que mantiene la tasa BCV fresca: en cada tick
// revisa la antigüedad de la tasa y, si supera el umbral y el auto-update
// está activo, consulta el servicio y escribe la tasa nueva. Un fallo del
// servicio externo solo se registra; la tienda sigue operando con la última
// tasa conocida. Respeta el contexto para el apagado ordenado.
func StartSync(ctx context.Context, cfg SyncConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		cfg.Log.Info().Dur("interval", cfg.Interval).Msg("bcv_sync: started")

		// Primer chequeo inmediato: tras un arranque la tasa puede llevar
		// días vieja.
		syncOnce(ctx, cfg)

		for {
			select {
			case <-ctx.Done():
				cfg.Log.Info().Msg("bcv_sync: shutting down")
				return
			case <-ticker.C:
				syncOnce(ctx, cfg)
			}
		}
	}()
}

func syncOnce(ctx context.Context, cfg SyncConfig) {
	settings, err := cfg.SettingsRepo.Get()
	if err != nil {
		cfg.Log.Error().Err(err).Msg("bcv_sync: no se pudo leer la configuración")
		return
	}
	if !settings.AutoUpdateBCV {
		return
	}
	if !settings.RateIsStale(time.Now(), cfg.StaleThreshold) {
		return
	}

	rate, err := cfg.Client.FetchRate(ctx)
	if err != nil {
		cfg.Log.Warn().Err(err).Msg("bcv_sync: fallo al consultar la tasa; se mantiene la última conocida")
		return
	}

	now := time.Now()
	if err := cfg.SettingsRepo.UpdateBCVRate(rate, now); err != nil {
		cfg.Log.Error().Err(err).Msg("bcv_sync: no se pudo guardar la tasa")
		return
	}
	if cfg.RatesCache != nil {
		if err := cfg.RatesCache.SetBCVRate(ctx, rate, now); err != nil {
			cfg.Log.Warn().Err(err).Msg("bcv_sync: no se pudo actualizar el cache")
		}
	}
	cfg.Log.Info().Str("rate", rate.String()).Msg("bcv_sync: tasa BCV actualizada")
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del registro singleton de configuración sobre PostgreSQL.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la configuración; si el registro aún no existe lo crea con
// valores por defecto. El ON CONFLICT cubre la carrera de dos arranques
// simultáneos.
func (r *SettingsRepo) Get() (*entity.AppSettings, error) {
	s, err := r.fetch()
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	defaults := &entity.AppSettings{
		ID:            entity.SettingsID,
		BCVRate:       decimal.NewFromInt(36),
		ParallelRate:  decimal.NewFromInt(38),
		ProfitMargin:  decimal.NewFromInt(30),
		AutoUpdateBCV: true,
		LastUpdated:   time.Now(),
	}
	_, err = r.q.Exec(context.Background(), `
		INSERT INTO app_settings (id, bcv_rate, parallel_rate, profit_margin, auto_update_bcv, admin_pin_hash, last_updated)
		VALUES ($1, $2, $3, $4, $5, NULL, $6)
		ON CONFLICT (id) DO NOTHING`,
		defaults.ID, defaults.BCVRate, defaults.ParallelRate, defaults.ProfitMargin,
		defaults.AutoUpdateBCV, defaults.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("seed settings: %w", err)
	}
	s, err = r.fetch()
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

func (r *SettingsRepo) fetch() (*entity.AppSettings, error) {
	var s entity.AppSettings
	var pinHash *string
	err := r.q.QueryRow(context.Background(), `
		SELECT id, bcv_rate, parallel_rate, profit_margin, auto_update_bcv, admin_pin_hash, last_updated
		FROM app_settings WHERE id = $1`, entity.SettingsID,
	).Scan(&s.ID, &s.BCVRate, &s.ParallelRate, &s.ProfitMargin, &s.AutoUpdateBCV, &pinHash, &s.LastUpdated)
	if err != nil {
		return nil, err
	}
	if pinHash != nil {
		s.AdminPINHash = *pinHash
	}
	return &s, nil
}

// Update reescribe la configuración completa.
func (r *SettingsRepo) Update(s *entity.AppSettings) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE app_settings
		SET bcv_rate = $2, parallel_rate = $3, profit_margin = $4, auto_update_bcv = $5,
		    admin_pin_hash = $6, last_updated = $7
		WHERE id = $1`,
		entity.SettingsID, s.BCVRate, s.ParallelRate, s.ProfitMargin, s.AutoUpdateBCV,
		nullIfEmpty(s.AdminPINHash), s.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// UpdateBCVRate escribe solo la tasa BCV y su marca de tiempo (lo usa el
// sincronizador, que no debe pisar el resto de la configuración).
func (r *SettingsRepo) UpdateBCVRate(rate decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE app_settings SET bcv_rate = $2, last_updated = $3 WHERE id = $1`,
		entity.SettingsID, rate, at,
	)
	if err != nil {
		return fmt.Errorf("update bcv rate: %w", err)
	}
	return nil
}

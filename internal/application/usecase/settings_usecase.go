package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

// RatesCache es el cache de tasas que alimenta la vista pública de precios.
// La implementación Redis vive en infraestructura; un cache apagado se
// representa con métodos no-op, nunca con un error.
type RatesCache interface {
	GetRates(ctx context.Context) (bcv, parallel decimal.Decimal, at time.Time, ok bool)
	SetRates(ctx context.Context, bcv, parallel decimal.Decimal, at time.Time) error
}

// SettingsUseCase administra el registro singleton de configuración: tasas
// de cambio, margen global y PIN de administrador.
type SettingsUseCase struct {
	repo       repository.SettingsRepository
	ratesCache RatesCache
}

// NewSettingsUseCase construye el caso de uso. ratesCache puede ser nil.
func NewSettingsUseCase(repo repository.SettingsRepository, ratesCache RatesCache) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, ratesCache: ratesCache}
}

// Get devuelve la configuración vigente. El hash del PIN nunca sale.
func (uc *SettingsUseCase) Get() (*dto.SettingsResponse, error) {
	settings, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{
		BCVRate:       settings.BCVRate,
		ParallelRate:  settings.ParallelRate,
		ProfitMargin:  settings.ProfitMargin,
		AutoUpdateBCV: settings.AutoUpdateBCV,
		LastUpdated:   settings.LastUpdated,
	}, nil
}

// GetRates devuelve solo las tasas, para la vista pública de precios. Lee
// primero del cache; en un fallo del cache cae a la base y lo repuebla.
func (uc *SettingsUseCase) GetRates(ctx context.Context) (*dto.RatesResponse, error) {
	if uc.ratesCache != nil {
		if bcv, parallel, at, ok := uc.ratesCache.GetRates(ctx); ok {
			return &dto.RatesResponse{
				BCVRate:      bcv,
				ParallelRate: parallel,
				LastUpdated:  at,
			}, nil
		}
	}
	settings, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if uc.ratesCache != nil {
		// Mejor esfuerzo: un Redis caído no tumba la vista de tasas.
		_ = uc.ratesCache.SetRates(ctx, settings.BCVRate, settings.ParallelRate, settings.LastUpdated)
	}
	return &dto.RatesResponse{
		BCVRate:      settings.BCVRate,
		ParallelRate: settings.ParallelRate,
		LastUpdated:  settings.LastUpdated,
	}, nil
}

// Update aplica los cambios del formulario de configuración. Un cambio de
// tasa refresca LastUpdated (reinicia el reloj de staleness del
// sincronizador) y el cache de tasas. El PIN llega en claro y se almacena
// su hash bcrypt.
func (uc *SettingsUseCase) Update(in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	ratesChanged := false
	if in.BCVRate != nil {
		if !in.BCVRate.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		settings.BCVRate = *in.BCVRate
		ratesChanged = true
	}
	if in.ParallelRate != nil {
		if !in.ParallelRate.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		settings.ParallelRate = *in.ParallelRate
		ratesChanged = true
	}
	if in.ProfitMargin != nil {
		if in.ProfitMargin.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		settings.ProfitMargin = *in.ProfitMargin
	}
	if in.AutoUpdateBCV != nil {
		settings.AutoUpdateBCV = *in.AutoUpdateBCV
	}
	if in.AdminPIN != nil {
		if len(*in.AdminPIN) < 4 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.AdminPIN), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		settings.AdminPINHash = string(hash)
	}
	if ratesChanged {
		settings.LastUpdated = time.Now()
	}
	if err := uc.repo.Update(settings); err != nil {
		return nil, err
	}
	if ratesChanged && uc.ratesCache != nil {
		_ = uc.ratesCache.SetRates(context.Background(), settings.BCVRate, settings.ParallelRate, settings.LastUpdated)
	}
	return &dto.SettingsResponse{
		BCVRate:       settings.BCVRate,
		ParallelRate:  settings.ParallelRate,
		ProfitMargin:  settings.ProfitMargin,
		AutoUpdateBCV: settings.AutoUpdateBCV,
		LastUpdated:   settings.LastUpdated,
	}, nil
}

// VerifyPIN valida el PIN de administrador contra el hash almacenado.
// Sin PIN configurado toda verificación falla.
func (uc *SettingsUseCase) VerifyPIN(pin string) error {
	settings, err := uc.repo.Get()
	if err != nil {
		return err
	}
	if settings.AdminPINHash == "" {
		return domain.ErrInvalidPIN
	}
	if bcrypt.CompareHashAndPassword([]byte(settings.AdminPINHash), []byte(pin)) != nil {
		return domain.ErrInvalidPIN
	}
	return nil
}

package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

// Fakes en memoria. El fakeTxRunner restaura un snapshot cuando el callback
// falla, igual que haría el ROLLBACK de la transacción real.

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	if _, ok := r.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)      { return r.products[id], nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.products[id], nil }

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(category string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStocks(id string, stockLevel, reservedStock, damagedStock int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockLevel = stockLevel
	p.ReservedStock = reservedStock
	p.DamagedStock = damagedStock
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeRepairRepo struct {
	jobs map[string]*entity.RepairJob
}

func newFakeRepairRepo(jobs ...*entity.RepairJob) *fakeRepairRepo {
	r := &fakeRepairRepo{jobs: make(map[string]*entity.RepairJob)}
	for _, j := range jobs {
		cp := *j
		r.jobs[j.ID] = &cp
	}
	return r
}

func (r *fakeRepairRepo) Create(j *entity.RepairJob) error {
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeRepairRepo) GetByID(id string) (*entity.RepairJob, error)      { return r.jobs[id], nil }
func (r *fakeRepairRepo) GetForUpdate(id string) (*entity.RepairJob, error) { return r.jobs[id], nil }

func (r *fakeRepairRepo) List(status string, limit, offset int) ([]*entity.RepairJob, error) {
	var out []*entity.RepairJob
	for _, j := range r.jobs {
		if status == "" || j.Status == status {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeRepairRepo) Update(j *entity.RepairJob) error {
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeRepairRepo) Delete(id string) error {
	delete(r.jobs, id)
	return nil
}

type fakeSettingsRepo struct {
	settings *entity.AppSettings
}

func newFakeSettingsRepo(s *entity.AppSettings) *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: s}
}

func (r *fakeSettingsRepo) Get() (*entity.AppSettings, error) {
	cp := *r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Update(s *entity.AppSettings) error {
	cp := *s
	r.settings = &cp
	return nil
}

func (r *fakeSettingsRepo) UpdateBCVRate(rate decimal.Decimal, at time.Time) error {
	r.settings.BCVRate = rate
	r.settings.LastUpdated = at
	return nil
}

type fakeTxRunner struct {
	products *fakeProductRepo
	repairs  *fakeRepairRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	repairRepo repository.RepairJobRepository,
	saleRepo repository.SaleRepository,
) error) error {
	products := make(map[string]*entity.Product, len(r.products.products))
	for k, v := range r.products.products {
		cp := *v
		products[k] = &cp
	}
	jobs := make(map[string]*entity.RepairJob, len(r.repairs.jobs))
	for k, v := range r.repairs.jobs {
		cp := *v
		jobs[k] = &cp
	}
	if err := fn(r.products, r.repairs, nil); err != nil {
		r.products.products = products
		r.repairs.jobs = jobs
		return err
	}
	return nil
}

func testSettings() *entity.AppSettings {
	return &entity.AppSettings{
		ID:           entity.SettingsID,
		BCVRate:      decimal.NewFromInt(40),
		ParallelRate: decimal.NewFromInt(50),
		ProfitMargin: decimal.NewFromInt(30),
		LastUpdated:  time.Now(),
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

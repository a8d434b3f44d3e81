package sales_test

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

// Fakes en memoria para los casos de uso de venta. El fakeTxRunner simula el
// rollback restaurando un snapshot del estado cuando el callback falla, que
// es exactamente la semántica que los casos de uso asumen de la transacción
// real.

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

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.products[id], nil
}

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

func (r *fakeRepairRepo) GetByID(id string) (*entity.RepairJob, error) {
	return r.jobs[id], nil
}

func (r *fakeRepairRepo) GetForUpdate(id string) (*entity.RepairJob, error) {
	return r.jobs[id], nil
}

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

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	order []string
}

func newFakeSaleRepo(sales ...*entity.Sale) *fakeSaleRepo {
	r := &fakeSaleRepo{sales: make(map[string]*entity.Sale)}
	for _, s := range sales {
		cp := *s
		r.sales[s.ID] = &cp
		r.order = append(r.order, s.ID)
	}
	return r
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	if _, ok := r.sales[s.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	r.sales[s.ID] = &cp
	r.order = append(r.order, s.ID)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, id := range r.order {
		s := r.sales[id]
		if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListOpenByDay(day time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, id := range r.order {
		s := r.sales[id]
		sameDay := s.CreatedAt.Format("2006-01-02") == day.Format("2006-01-02")
		if sameDay && !s.IsReconciled() && s.Status == entity.SaleStatusCompleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) Update(s *entity.Sale) error {
	if _, ok := r.sales[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) SetReconciliation(saleID, reconciliationID string) error {
	s, ok := r.sales[saleID]
	if !ok {
		return domain.ErrNotFound
	}
	s.ReconciliationID = reconciliationID
	return nil
}

type fakeReconRepo struct {
	recons map[string]*entity.DailyReconciliation
	order  []string
}

func newFakeReconRepo() *fakeReconRepo {
	return &fakeReconRepo{recons: make(map[string]*entity.DailyReconciliation)}
}

func (r *fakeReconRepo) Create(rec *entity.DailyReconciliation) error {
	if _, ok := r.recons[rec.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *rec
	r.recons[rec.ID] = &cp
	r.order = append(r.order, rec.ID)
	return nil
}

func (r *fakeReconRepo) GetByID(id string) (*entity.DailyReconciliation, error) {
	return r.recons[id], nil
}

func (r *fakeReconRepo) List(limit, offset int) ([]*entity.DailyReconciliation, error) {
	var out []*entity.DailyReconciliation
	for _, id := range r.order {
		out = append(out, r.recons[id])
	}
	return out, nil
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

// fakeTxRunner invoca el callback con los mismos fakes y restaura el estado
// previo si el callback falla (el equivalente del ROLLBACK real).
type fakeTxRunner struct {
	products *fakeProductRepo
	repairs  *fakeRepairRepo
	sales    *fakeSaleRepo
	recons   *fakeReconRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	repairRepo repository.RepairJobRepository,
	saleRepo repository.SaleRepository,
) error) error {
	products := cloneMap(r.products.products)
	jobs := cloneMap(r.repairs.jobs)
	sales := cloneMap(r.sales.sales)
	order := append([]string(nil), r.sales.order...)

	if err := fn(r.products, r.repairs, r.sales); err != nil {
		r.products.products = products
		r.repairs.jobs = jobs
		r.sales.sales = sales
		r.sales.order = order
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunCloseDay(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	reconRepo repository.ReconciliationRepository,
) error) error {
	sales := cloneMap(r.sales.sales)
	order := append([]string(nil), r.sales.order...)
	recons := cloneMap(r.recons.recons)
	reconOrder := append([]string(nil), r.recons.order...)

	if err := fn(r.sales, r.recons); err != nil {
		r.sales.sales = sales
		r.sales.order = order
		r.recons.recons = recons
		r.recons.order = reconOrder
		return err
	}
	return nil
}

func cloneMap[T any](m map[string]*T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
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
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		panic(err)
	}
	return d
}

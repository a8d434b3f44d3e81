package repository

import "github.com/multimovil/pos-api/internal/domain/entity"

// ProductRepository puerto de persistencia de productos.
// GetForUpdate solo tiene sentido dentro de una transacción: bloquea la fila
// (SELECT FOR UPDATE) para el read-modify-write de los campos de stock.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(category string, limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	Update(p *entity.Product) error
	UpdateStocks(id string, stockLevel, reservedStock, damagedStock int) error
	Delete(id string) error
}

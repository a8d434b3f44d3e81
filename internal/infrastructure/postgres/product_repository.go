package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, sku, cost_price, promo_price, profit_margin,
	stock_level, reserved_stock, damaged_stock, low_stock_threshold,
	is_combo, combo_items, is_fixed_price, is_giftable, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, nullIfEmpty(p.Category), p.SKU, p.CostPrice, p.PromoPrice, p.ProfitMargin,
		p.StockLevel, p.ReservedStock, p.DamagedStock, p.LowStockThreshold,
		p.IsCombo, p.ComboItems, p.IsFixedPrice, p.IsGiftable, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.get(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene un producto bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.get(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.get(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *ProductRepo) get(query string, arg any) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List lista productos, opcionalmente por categoría, ordenados por nombre.
func (r *ProductRepo) List(category string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}
	return r.list(query, args...)
}

// ListLowStock lista los productos cuyo disponible está bajo el umbral.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE NOT is_combo
		  AND stock_level - reserved_stock - damaged_stock <= low_stock_threshold
		ORDER BY name`
	return r.list(query)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los datos del producto salvo los campos de stock
// reservado/dañado, que solo mueven las transacciones vía UpdateStocks.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, cost_price = $4, promo_price = $5, profit_margin = $6,
		    stock_level = $7, low_stock_threshold = $8, combo_items = $9,
		    is_fixed_price = $10, is_giftable = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, nullIfEmpty(p.Category), p.CostPrice, p.PromoPrice, p.ProfitMargin,
		p.StockLevel, p.LowStockThreshold, p.ComboItems,
		p.IsFixedPrice, p.IsGiftable, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStocks escribe los tres contadores de stock de una sola vez. Se llama
// siempre tras un GetForUpdate dentro de la misma transacción.
func (r *ProductRepo) UpdateStocks(id string, stockLevel, reservedStock, damagedStock int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_level = $2, reserved_stock = $3, damaged_stock = $4, updated_at = now() WHERE id = $1`,
		id, stockLevel, reservedStock, damagedStock,
	)
	if err != nil {
		return fmt.Errorf("update stocks: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var category *string
	err := row.Scan(
		&p.ID, &p.Name, &category, &p.SKU, &p.CostPrice, &p.PromoPrice, &p.ProfitMargin,
		&p.StockLevel, &p.ReservedStock, &p.DamagedStock, &p.LowStockThreshold,
		&p.IsCombo, &p.ComboItems, &p.IsFixedPrice, &p.IsGiftable, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if category != nil {
		p.Category = *category
	}
	return &p, nil
}

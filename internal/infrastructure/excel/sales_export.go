// Package excel genera el reporte de ventas en formato xlsx.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/reports"
)

var _ reports.SalesExporter = (*SalesExporter)(nil)

const sheetName = "Ventas"

var headers = []string{"Venta", "Fecha", "Producto", "Categoría", "Cantidad", "Precio (USD)", "Subtotal (USD)", "Estado"}

// SalesExporter produce el xlsx con una fila por línea de venta.
type SalesExporter struct{}

// NewSalesExporter construye el exportador.
func NewSalesExporter() *SalesExporter { return &SalesExporter{} }

// Export genera el archivo y devuelve sus bytes.
func (e *SalesExporter) Export(rows []dto.SalesExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: cabecera: %w", err)
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", endHeader, headerStyle)

	for i, r := range rows {
		rowNum := i + 2
		values := []any{
			r.SaleID, r.Date, r.ProductName, r.Category, r.Quantity,
			r.UnitPrice.InexactFloat64(), r.Subtotal.InexactFloat64(), r.Status,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("excel: fila %d: %w", rowNum, err)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 16)
	_ = f.SetColWidth(sheetName, "B", "B", 18)
	_ = f.SetColWidth(sheetName, "C", "C", 32)
	_ = f.SetColWidth(sheetName, "D", "D", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}

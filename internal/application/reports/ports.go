package reports

import (
	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/domain/entity"
)

// ReceiptGenerator produce el PDF de ticket (80mm) de una venta o de la
// orden de servicio de una reparación.
type ReceiptGenerator interface {
	SaleReceipt(sale *entity.Sale, settings *entity.AppSettings) ([]byte, error)
	RepairTicket(job *entity.RepairJob) ([]byte, error)
}

// SalesExporter produce el archivo xlsx con las filas del reporte de ventas.
type SalesExporter interface {
	Export(rows []dto.SalesExportRow) ([]byte, error)
}

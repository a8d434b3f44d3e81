package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/reports"
)

// ReportHandler maneja el resumen del día y la exportación de ventas.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// TodaySummary godoc
// @Summary      Resumen del día
// @Description  Totales vendidos, desglose por método de pago y productos con stock bajo
// @Tags         reports
// @Produce      json
// @Security     Bearer
// @Success      200 {object} dto.SalesSummaryResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) TodaySummary(c *fiber.Ctx) error {
	resp, err := h.uc.TodaySummary(time.Now())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// ExportSales godoc
// @Summary      Exportar ventas a Excel
// @Description  Una fila por línea de venta en el rango indicado
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     Bearer
// @Param        from query string false "Desde (YYYY-MM-DD), por defecto hoy"
// @Param        to query string false "Hasta (YYYY-MM-DD), por defecto hoy"
// @Success      200 {file} binary
// @Router       /api/reports/sales.xlsx [get]
func (h *ReportHandler) ExportSales(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de fecha inválido, se espera YYYY-MM-DD"})
	}
	xlsxBytes, err := h.uc.ExportSales(from, to)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas-`+from.Format("2006-01-02")+`.xlsx"`)
	return c.Send(xlsxBytes)
}

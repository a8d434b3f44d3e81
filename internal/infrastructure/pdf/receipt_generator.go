// Package pdf genera los tickets térmicos de 80mm: el recibo de venta y la
// orden de servicio de reparación que se entrega al cliente.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/multimovil/pos-api/internal/application/reports"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/pricing"
)

var _ reports.ReceiptGenerator = (*ReceiptGenerator)(nil)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// Papel térmico de 80mm; el alto es generoso y la impresora corta al final.
const (
	ticketWidth  = 80.0
	ticketHeight = 250.0
)

// ReceiptGenerator genera tickets con Maroto v2.
type ReceiptGenerator struct {
	shopName    string
	shopAddress string
	shopPhone   string
}

// NewReceiptGenerator construye el generador con los datos de la tienda que
// encabezan cada ticket.
func NewReceiptGenerator(shopName, shopAddress, shopPhone string) *ReceiptGenerator {
	return &ReceiptGenerator{shopName: shopName, shopAddress: shopAddress, shopPhone: shopPhone}
}

func (g *ReceiptGenerator) newTicket() core.Maroto {
	cfg := config.NewBuilder().
		WithDimensions(ticketWidth, ticketHeight).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		Build()
	return maroto.New(cfg)
}

// SaleReceipt genera el recibo de una venta: líneas, totales en USD y Bs a
// la tasa BCV del momento, pagos y vuelto.
func (g *ReceiptGenerator) SaleReceipt(sale *entity.Sale, settings *entity.AppSettings) ([]byte, error) {
	m := g.newTicket()

	m.AddRows(g.headerRows()...)
	m.AddRows(
		keyValueRow("Recibo", sale.ID),
		keyValueRow("Fecha", sale.CreatedAt.Format("02/01/2006 15:04")),
		separator(),
	)

	for _, item := range sale.Items {
		name := item.Name
		if item.IsGift {
			name += " (regalo)"
		}
		m.AddRows(
			row.New(3.5).Add(col.New(12).Add(text.New(name, props.Text{Size: 8}))),
			row.New(3.5).Add(
				col.New(6).Add(text.New(
					fmt.Sprintf("%d x %s", item.Quantity, money(item.UnitPrice)),
					props.Text{Size: 8, Color: colorGray},
				)),
				col.New(6).Add(text.New(money(item.Subtotal()), props.Text{Size: 8, Align: align.Right})),
			),
		)
	}

	m.AddRows(separator())
	if sale.Discount.IsPositive() {
		m.AddRows(
			keyValueRow("Subtotal", money(sale.Subtotal)),
			keyValueRow("Descuento", "-"+money(sale.Discount)),
		)
	}
	totalBs := pricing.Convert(sale.TotalAmount, entity.CurrencyUSD, entity.CurrencyVES, settings.BCVRate).Round(2)
	m.AddRows(
		boldKeyValueRow("TOTAL USD", money(sale.TotalAmount)),
		boldKeyValueRow("TOTAL Bs", moneyBs(totalBs)),
		keyValueRow("Tasa BCV", settings.BCVRate.StringFixed(2)),
		separator(),
	)

	for _, p := range sale.Payments {
		m.AddRows(keyValueRow(paymentLabel(p.Method), payAmount(p)))
	}
	if sale.ChangeGiven.IsPositive() {
		m.AddRows(keyValueRow("Vuelto", money(sale.ChangeGiven)))
	}

	if sale.Status == entity.SaleStatusRefunded {
		m.AddRows(
			separator(),
			row.New(4).Add(col.New(12).Add(text.New("*** VENTA REEMBOLSADA ***", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
			}))),
		)
	}

	m.AddRows(
		separator(),
		row.New(4).Add(col.New(12).Add(text.New("¡Gracias por su compra!", props.Text{
			Size: 8, Align: align.Center,
		}))),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// RepairTicket genera la orden de servicio que se entrega al dejar el equipo.
func (g *ReceiptGenerator) RepairTicket(job *entity.RepairJob) ([]byte, error) {
	m := g.newTicket()

	m.AddRows(g.headerRows()...)
	m.AddRows(
		row.New(5).Add(col.New(12).Add(text.New("ORDEN DE SERVICIO", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Center,
		}))),
		keyValueRow("Orden", job.ID),
		keyValueRow("Fecha", job.CreatedAt.Format("02/01/2006 15:04")),
		separator(),
		keyValueRow("Cliente", job.CustomerName),
	)
	if job.CustomerPhone != "" {
		m.AddRows(keyValueRow("Teléfono", job.CustomerPhone))
	}
	m.AddRows(keyValueRow("Equipo", job.DeviceBrand+" "+job.DeviceModel))
	if job.DeviceIMEI != "" {
		m.AddRows(keyValueRow("IMEI", job.DeviceIMEI))
	}
	m.AddRows(
		separator(),
		row.New(3.5).Add(col.New(12).Add(text.New("Falla reportada:", props.Text{Size: 8, Style: fontstyle.Bold}))),
		row.New(7).Add(col.New(12).Add(text.New(job.ReportedIssue, props.Text{Size: 8}))),
		separator(),
		keyValueRow("Estado", job.Status),
		boldKeyValueRow("Presupuesto", money(job.EstimatedCost)),
	)
	if job.AmountPaid.IsPositive() {
		m.AddRows(
			keyValueRow("Abonado", money(job.AmountPaid)),
			boldKeyValueRow("Saldo", money(job.Balance())),
		)
	}
	if job.WarrantyEndsAt != nil {
		m.AddRows(keyValueRow("Garantía hasta", job.WarrantyEndsAt.Format("02/01/2006")))
	}
	m.AddRows(
		separator(),
		row.New(6).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Garantía de reparación: %d días desde la entrega.", entity.WarrantyDays),
			props.Text{Size: 7, Color: colorGray},
		))),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar orden de servicio: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRows() []core.Row {
	rows := []core.Row{
		row.New(5).Add(col.New(12).Add(text.New(g.shopName, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center,
		}))),
	}
	if g.shopAddress != "" {
		rows = append(rows, row.New(3.5).Add(col.New(12).Add(text.New(g.shopAddress, props.Text{
			Size: 7, Align: align.Center, Color: colorGray,
		}))))
	}
	if g.shopPhone != "" {
		rows = append(rows, row.New(3.5).Add(col.New(12).Add(text.New(g.shopPhone, props.Text{
			Size: 7, Align: align.Center, Color: colorGray,
		}))))
	}
	rows = append(rows, separator())
	return rows
}

func separator() core.Row {
	return line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2})
}

func keyValueRow(key, value string) core.Row {
	return row.New(3.5).Add(
		col.New(6).Add(text.New(key, props.Text{Size: 8})),
		col.New(6).Add(text.New(value, props.Text{Size: 8, Align: align.Right})),
	)
}

func boldKeyValueRow(key, value string) core.Row {
	return row.New(4).Add(
		col.New(6).Add(text.New(key, props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(6).Add(text.New(value, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
	)
}

// esVE agrupa miles al estilo venezolano (12.345,50) para los montos en Bs,
// que con la tasa suelen ser cifras largas.
var esVE = message.NewPrinter(language.MustParse("es-VE"))

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func moneyBs(d decimal.Decimal) string {
	return esVE.Sprintf("Bs %.2f", d.InexactFloat64())
}

// payAmount formatea el monto de un pago en su moneda nativa.
func payAmount(p entity.Payment) string {
	if p.Currency == entity.CurrencyVES {
		return moneyBs(p.Amount)
	}
	return money(p.Amount)
}

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentCashUSD:
		return "Efectivo USD"
	case entity.PaymentCashBs:
		return "Efectivo Bs"
	case entity.PaymentPagoMovil:
		return "Pago Móvil"
	case entity.PaymentCard:
		return "Punto de Venta"
	case entity.PaymentZelle:
		return "Zelle"
	default:
		return method
	}
}

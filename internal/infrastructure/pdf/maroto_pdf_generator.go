// Package pdf implementa la generación de la orden de servicio imprimible
// que se entrega al cliente en mostrador.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Henry Diagnostics  │  N° Orden + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono + email                         │
//	│  VEHÍCULO: Marca Modelo Año | Placa | VIN | Km              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SERVICIO: tipo + descripción + mecánico asignado           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: Precio estimado / Estado                            │
//	│  FOOTER: Leyenda de garantía                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 163, Green: 29, Blue: 29}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera órdenes de servicio usando Maroto v2.
type MarotoPDFGenerator struct {
	tallerNombre string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(tallerNombre string) *MarotoPDFGenerator {
	if tallerNombre == "" {
		tallerNombre = "Henry Diagnostics"
	}
	return &MarotoPDFGenerator{tallerNombre: tallerNombre}
}

// GenerateServiceOrderPDF genera el PDF de la orden y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateServiceOrderPDF(_ context.Context, detail *entity.ServiceDetail) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Servicio", true).
		WithAuthor(g.tallerNombre, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(detail))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(detail.Customer))
	m.AddRows(vehiculoRow(detail.Vehicle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(servicioRows(detail)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(detail))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del taller (izq) y número de orden + fecha (der).
func (g *MarotoPDFGenerator) headerRow(detail *entity.ServiceDetail) core.Row {
	fecha := detail.FechaServicio.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.tallerNombre, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Taller mecánico automotriz", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(detail.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos de contacto del cliente.
func clienteRow(customer *entity.Customer) core.Row {
	nombre, contacto := "—", "—"
	if customer != nil {
		nombre = customer.Nombre
		contacto = fmt.Sprintf("Tel: %s   |   WhatsApp: %s   |   Email: %s",
			customer.Telefono,
			nonEmpty(customer.WhatsApp, "—"),
			derefOr(customer.Email, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(contacto, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// vehiculoRow: identificación del vehículo.
func vehiculoRow(vehicle *entity.Vehicle) core.Row {
	desc, datos := "—", "—"
	if vehicle != nil {
		desc = fmt.Sprintf("%s %s %d", vehicle.Marca, vehicle.Modelo, vehicle.Anio)
		if vehicle.Color != nil {
			desc += "  (" + *vehicle.Color + ")"
		}
		datos = fmt.Sprintf("Placa: %s   |   VIN: %s   |   Km: %s",
			vehicle.PlacaActual,
			derefOr(vehicle.VIN, "sin registrar"),
			formatMiles(strconv.Itoa(vehicle.Kilometraje)),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("VEHÍCULO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(desc, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(datos, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// servicioRows: tipo de servicio, descripción y mecánico asignado.
func servicioRows(detail *entity.ServiceDetail) []core.Row {
	mecanico := "por asignar"
	if detail.Mechanic != nil {
		mecanico = detail.Mechanic.Nombre
		if detail.Mechanic.Especialidad != nil {
			mecanico += " (" + *detail.Mechanic.Especialidad + ")"
		}
	}
	return []core.Row{
		row.New(12).Add(
			col.New(12).Add(
				text.New("SERVICIO", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(detail.TipoServicio, props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 6,
				}),
			),
		),
		row.New(10).Add(
			col.New(12).Add(
				text.New(nonEmpty(detail.Descripcion, "—"), props.Text{
					Size: 9, Top: 1,
				}),
				text.New("Mecánico: "+mecanico, props.Text{
					Size: 8, Top: 6, Color: colorGray,
				}),
			),
		),
	}
}

// totalRow: precio estimado y estado de la orden.
func totalRow(detail *entity.ServiceDetail) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("Estado: "+detail.Estado, props.Text{
				Size: 9, Top: 4, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("PRECIO ESTIMADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("$"+formatMiles(detail.Precio.StringFixed(2)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 6,
			}),
		),
	)
}

// footerRow: leyenda de garantía y condiciones.
func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"El precio indicado es un estimado y puede ajustarse tras el diagnóstico. "+
				"Los trabajos realizados cuentan con 30 días de garantía sobre mano de obra. "+
				"Conserve esta orden para la entrega de su vehículo.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func derefOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

// shortID recorta el UUID a un folio legible (primeros 8 caracteres en mayúsculas).
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	out := make([]byte, len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return "OS-" + string(out)
}

// formatMiles inserta comas de miles en la parte entera de un string numérico.
// Ej: "25000" → "25,000", "1250000.50" → "1,250,000.50"
func formatMiles(s string) string {
	entero, resto := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			entero, resto = s[:i], s[i:]
			break
		}
	}
	n := len(entero)
	if n <= 3 {
		return entero + resto
	}
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, entero[i])
	}
	return string(buf) + resto
}

// Package pdf implementa la ficha de producto en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del producto  │  Código + Estado            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: precio base, publicado, clave de traducción          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TRADUCCIONES: una sección por idioma                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Región | Categoría imponible                         │
//	│  SECCIONES: lista de secciones del catálogo                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/backoffice-api/internal/application/products"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSheetGenerator implementa products.SheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// GenerateProductSheet genera el PDF de la ficha y devuelve sus bytes.
func (g *MarotoSheetGenerator) GenerateProductSheet(_ context.Context, data products.SheetData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de producto "+data.Product.Code, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Product, displayName(data)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(factsRow(data.Product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, r := range translationRows(data.Translations) {
		m.AddRows(r)
	}

	if len(data.Regions) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(regionHeaderRow())
		for _, r := range regionRows(data.Regions) {
			m.AddRows(r)
		}
	}

	if len(data.Sections) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(sectionsRow(data.Sections))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// displayName elige el nombre a mostrar: la primera traducción con nombre.
func displayName(data products.SheetData) string {
	for _, t := range data.Translations {
		if t.Name != "" {
			return t.Name
		}
	}
	return data.Product.Code
}

// headerRow: nombre del producto (izq) y código + estado (der).
func headerRow(p *entity.Product, name string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Clave de traducción: "+p.TranslationKey, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FICHA DE PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(p.Code, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+p.StatusCode, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// factsRow: precio base y bandera de publicación.
func factsRow(p *entity.Product) core.Row {
	price := "—"
	if p.Price != nil {
		price = "$" + p.Price.StringFixed(2)
	}
	published := "no"
	if p.IsPublished {
		published = "sí"
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("DATOS GENERALES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Precio base: %s   |   Publicado en catálogo: %s", price, published),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

// translationRows: una sección por idioma con nombre y descripciones.
func translationRows(translations []entity.ProductTranslation) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("TRADUCCIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, t := range translations {
		rows = append(rows, row.New(16).Add(
			col.New(2).Add(
				text.New(strings.ToUpper(t.Lang), props.Text{
					Style: fontstyle.Bold, Size: 9, Top: 1,
				}),
			),
			col.New(10).Add(
				text.New(t.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
				text.New(nonEmpty(t.ShortDescription, t.FullDescription), props.Text{
					Size: 8, Top: 7, Color: colorGray,
				}),
			),
		))
	}
	return rows
}

// regionHeaderRow: cabecera de la tabla de regiones.
func regionHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New("Región", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2, Left: 1,
		})),
		col.New(6).Add(text.New("Categoría imponible", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2, Left: 1,
		})),
	)
}

// regionRows: una fila por binding producto↔región.
func regionRows(regions []products.SheetRegion) []core.Row {
	result := make([]core.Row, 0, len(regions))
	for _, r := range regions {
		category := "—"
		if r.CategoryID != nil {
			category = *r.CategoryID
		}
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(
				fmt.Sprintf("%s — %s", r.Code, r.Name),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(6).Add(text.New(category, props.Text{
				Size: 8, Top: 1, Left: 1, Color: colorGray,
			})),
		))
	}
	return result
}

// sectionsRow: secciones del catálogo donde el producto está publicado.
func sectionsRow(sections []string) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("SECCIONES DEL CATÁLOGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.Join(sections, "   |   "), props.Text{
				Size: 8, Top: 6, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"cat-registry/internal/domain/cats"
	"cat-registry/internal/domain/pedigree"
)

// Layout A4 apaisado, en mm.
const (
	pageMargin   = 10.0
	tableTop     = 72.0
	tableHeight  = 118.0
	headerHeight = 7.0
	lineHeight   = 3.8
)

type profile struct {
	cat     cats.Cat
	owner   string
	breeder string
}

func writePedigreePDF(w io.Writer, p profile, depth int, gens []pedigree.Generation, issues int) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr("Pedigree "+p.cat.DisplayName()), false)
	pdf.AddPage()

	// Perfil
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(p.cat.DisplayName()), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range profileLines(p) {
		pdf.CellFormat(0, 5.5, tr(line), "", 1, "L", false, 0, "")
	}

	layout := buildLayout(depth, gens)

	// Encabezados de generación
	pdf.SetFillColor(79, 109, 122)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range layout.columns {
		pdf.SetXY(col.x, tableTop-headerHeight)
		pdf.CellFormat(layout.colWidth, headerHeight, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	for _, col := range layout.columns {
		size := 9.0
		if col.generation >= 3 {
			size = 7
		}
		for _, cell := range col.cells {
			pdf.Rect(col.x, cell.y, layout.colWidth, col.cellHeight, "D")
			if cell.entry != nil {
				writeEntry(pdf, tr, col.x, cell.y, layout.colWidth, col.cellHeight, size, *cell.entry)
			}
		}
	}

	if issues > 0 {
		pdf.SetXY(pageMargin, tableTop+tableHeight+3)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("%d parent reference(s) could not be followed (missing or circular).", issues), "", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf render: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf write: %w", err)
	}
	return nil
}

// pedigreeLayout ubica cada generación en una columna y cada slot en una celda.
// Slots sin gato quedan con entry nil: el árbol puede tener huecos.
type pedigreeLayout struct {
	colWidth float64
	columns  []layoutColumn
}

type layoutColumn struct {
	generation int
	title      string
	x          float64
	cellHeight float64
	cells      []layoutCell
}

type layoutCell struct {
	slot  int
	y     float64
	entry *pedigree.Entry
}

func buildLayout(depth int, gens []pedigree.Generation) pedigreeLayout {
	cols := depth + 1
	l := pedigreeLayout{
		colWidth: (297.0 - 2*pageMargin) / float64(cols),
		columns:  make([]layoutColumn, cols),
	}

	for g := range l.columns {
		slots := 1 << g
		h := tableHeight / float64(slots)
		col := layoutColumn{
			generation: g,
			title:      generationTitle(g),
			x:          pageMargin + float64(g)*l.colWidth,
			cellHeight: h,
			cells:      make([]layoutCell, slots),
		}
		for s := range col.cells {
			col.cells[s] = layoutCell{slot: s, y: tableTop + float64(s)*h}
		}
		l.columns[g] = col
	}

	for _, gen := range gens {
		if gen.Number >= cols {
			break
		}
		cells := l.columns[gen.Number].cells
		for i := range gen.Entries {
			e := gen.Entries[i]
			if e.Slot >= 0 && e.Slot < len(cells) {
				cells[e.Slot].entry = &e
			}
		}
	}
	return l
}

func writeEntry(pdf *fpdf.Fpdf, tr func(string) string, x, y, w, h, size float64, e pedigree.Entry) {
	lines := []string{e.Name, string(e.Gender)}
	if !e.Birthday.IsZero() {
		lines = append(lines, e.Birthday.Format("2006-01-02"))
	}

	lh := lineHeight * size / 9
	textHeight := lh * float64(len(lines))
	top := y + (h-textHeight)/2
	if top < y+0.5 {
		top = y + 0.5
	}

	for i, line := range lines {
		style := ""
		if i == 0 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.SetXY(x+1.5, top+float64(i)*lh)
		pdf.CellFormat(w-3, lh, truncate(pdf, tr(line), w-3), "", 0, "L", false, 0, "")
	}
}

// truncate recorta el texto (ya traducido a cp1252, un byte por carácter) al ancho de celda.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func profileLines(p profile) []string {
	c := p.cat
	lines := []string{
		fmt.Sprintf("%s, born %s", c.Gender, c.Birthday.Format("2006-01-02")),
	}
	add := func(label, v string) {
		if strings.TrimSpace(v) != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Microchip", c.Microchip)
	add("Colour", c.Colour)
	add("Titles", c.Titles)
	add("Status", string(c.Status))
	add("Owner", p.owner)
	add("Breeder", p.breeder)
	return lines
}

func generationTitle(g int) string {
	switch g {
	case 0:
		return "Cat"
	case 1:
		return "Parents"
	case 2:
		return "Grandparents"
	default:
		return strings.Repeat("Great-", g-2) + "grandparents"
	}
}

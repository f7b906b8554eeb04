// Package pdf genera el cuadrante de guardias de una delegación.
//
// Layout de la página A4 apaisada:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Delegación + código  │  Periodo + fecha de emisión      │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Inicio | Fin | Horas | Estado | Asignados                 │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  RESUMEN: N° guardias / Horas totales / Horas por técnico         │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/guardias-api/internal/application/scheduling"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

var _ scheduling.RosterPDFGenerator = (*MarotoRosterGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const (
	dateTimeLayout = "02/01/2006 15:04"
	dateLayout     = "02/01/2006"
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoRosterGenerator implementa scheduling.RosterPDFGenerator usando Maroto v2.
type MarotoRosterGenerator struct {
	loc *time.Location
	now func() time.Time
}

// NewMarotoRosterGenerator construye el generador. loc nil usa UTC.
func NewMarotoRosterGenerator(loc *time.Location) *MarotoRosterGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoRosterGenerator{loc: loc, now: time.Now}
}

// GenerateRoster genera el PDF y devuelve sus bytes. Las guardias deben venir con asignaciones.
func (g *MarotoRosterGenerator) GenerateRoster(
	delegation *entity.Delegation,
	period schedule.DateRange,
	shifts []*entity.Shift,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cuadrante de guardias", true).
		WithAuthor(delegation.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(delegation, period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(shifts) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin guardias en el periodo.", props.Text{Size: 9, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(g.shiftRows(shifts)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRows(Summarize(shifts))...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cuadrante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Resumen ───────────────────────────────────────────────────────────────────

// Summary totales del cuadrante. Las horas van redondeadas a dos decimales.
type Summary struct {
	Shifts     int
	TotalHours decimal.Decimal
	ByUser     []UserHours
}

// UserHours horas de guardia de un técnico, sumando todas sus asignaciones.
type UserHours struct {
	Name  string
	Hours decimal.Decimal
}

// Summarize calcula los totales; ByUser va ordenado por horas descendente y luego por nombre.
func Summarize(shifts []*entity.Shift) Summary {
	s := Summary{Shifts: len(shifts), TotalHours: decimal.Zero}
	perUser := map[int64]*UserHours{}
	for _, sh := range shifts {
		h := shiftHours(sh)
		s.TotalHours = s.TotalHours.Add(h)
		for _, a := range sh.Assignments {
			uh, ok := perUser[a.UserID]
			if !ok {
				uh = &UserHours{Name: assigneeName(a), Hours: decimal.Zero}
				perUser[a.UserID] = uh
			}
			uh.Hours = uh.Hours.Add(h)
		}
	}
	for _, uh := range perUser {
		s.ByUser = append(s.ByUser, *uh)
	}
	sort.Slice(s.ByUser, func(i, j int) bool {
		if !s.ByUser[i].Hours.Equal(s.ByUser[j].Hours) {
			return s.ByUser[i].Hours.GreaterThan(s.ByUser[j].Hours)
		}
		return s.ByUser[i].Name < s.ByUser[j].Name
	})
	return s
}

func shiftHours(sh *entity.Shift) decimal.Decimal {
	minutes := decimal.NewFromInt(int64(sh.End.Sub(sh.Start) / time.Minute))
	return minutes.Div(decimal.NewFromInt(60)).Round(2)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoRosterGenerator) headerRow(d *entity.Delegation, period schedule.DateRange) core.Row {
	sub := "Delegación"
	if d.Code != nil && *d.Code != "" {
		sub += " " + *d.Code
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(d.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(sub, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("CUADRANTE DE GUARDIAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(g.periodLabel(period), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7}),
			text.New("Emitido: "+g.now().In(g.loc).Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoRosterGenerator) periodLabel(p schedule.DateRange) string {
	from, to := "inicio", "sin fin"
	if p.From != nil {
		from = p.From.In(g.loc).Format(dateLayout)
	}
	if p.To != nil {
		to = p.To.In(g.loc).Format(dateLayout)
	}
	return from + " - " + to
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Inicio", 2, align.Left),
		h("Fin", 2, align.Left),
		h("Horas", 1, align.Right),
		h("Estado", 2, align.Center),
		h("Asignados", 5, align.Left),
	)
}

func (g *MarotoRosterGenerator) shiftRows(shifts []*entity.Shift) []core.Row {
	out := make([]core.Row, 0, len(shifts))
	cell := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1})
	}
	for _, sh := range shifts {
		out = append(out, row.New(7).Add(
			col.New(2).Add(cell(sh.Start.In(g.loc).Format(dateTimeLayout), align.Left)),
			col.New(2).Add(cell(sh.End.In(g.loc).Format(dateTimeLayout), align.Left)),
			col.New(1).Add(cell(shiftHours(sh).StringFixed(2), align.Right)),
			col.New(2).Add(cell(sh.Status, align.Center)),
			col.New(5).Add(cell(assigneesLabel(sh.Assignments), align.Left)),
		))
	}
	return out
}

func summaryRows(s Summary) []core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	rows := []core.Row{
		row.New(6).Add(col.New(8), col.New(2).Add(label("Guardias:")), col.New(2).Add(value(fmt.Sprint(s.Shifts)))),
		row.New(6).Add(col.New(8), col.New(2).Add(label("Horas totales:")), col.New(2).Add(value(s.TotalHours.StringFixed(2)))),
	}
	if len(s.ByUser) == 0 {
		return rows
	}
	rows = append(rows, row.New(7).Add(col.New(12).Add(
		text.New("HORAS POR TÉCNICO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	)))
	for _, uh := range s.ByUser {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(uh.Name, props.Text{Size: 8, Left: 2})),
			col.New(2).Add(text.New(uh.Hours.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
			col.New(4),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func assigneeName(a *entity.ShiftAssignment) string {
	if a.User != nil {
		return a.User.FullName()
	}
	return fmt.Sprintf("usuario %d", a.UserID)
}

// assigneesLabel: "Nombre (Principal), Nombre (Secundario)".
func assigneesLabel(list []*entity.ShiftAssignment) string {
	if len(list) == 0 {
		return "—"
	}
	parts := make([]string, 0, len(list))
	for _, a := range list {
		role := ""
		if a.GuardRole != nil {
			role = " (" + a.GuardRole.Name + ")"
		}
		parts = append(parts, assigneeName(a)+role)
	}
	return strings.Join(parts, ", ")
}

// Package pdf renders the printable documents with Maroto v2. Every document
// shares the same A4 layout skeleton:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: document title      │  number + issue date         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTIES: issuer / bill-to (or manufacturer) blocks          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: per-document line rows                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS (invoice and statement only)                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/application/documents"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateFormat = "2006-01-02"

// MarotoRenderer implements documents.Renderer using Maroto v2.
type MarotoRenderer struct{}

var _ documents.Renderer = (*MarotoRenderer)(nil)

// NewMarotoRenderer builds the renderer.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

// RenderInvoice renders an invoice PDF and returns its bytes.
func (g *MarotoRenderer) RenderInvoice(inv *documents.Invoice) ([]byte, error) {
	m := newDocument("Invoice " + inv.InvoiceNo)

	m.AddRows(headerRow("INVOICE", inv.InvoiceNo, inv.IssuedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("ISSUER", inv.Issuer))
	m.AddRows(partyRow("BILL TO", inv.BillTo))
	m.AddRows(periodRow(inv.From, inv.To))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		headerCell("Order No", 3, align.Left),
		headerCell("Date", 2, align.Center),
		headerCell("Center", 4, align.Left),
		headerCell("Amount", 3, align.Right),
	))
	for _, l := range inv.Lines {
		m.AddRows(row.New(6).Add(
			bodyCell(l.OrderNo, 3, align.Left),
			bodyCell(l.OrderDate.Format(dateFormat), 2, align.Center),
			bodyCell(l.CenterName, 4, align.Left),
			bodyCell(money(l.Amount), 3, align.Right),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([]totalLine{
		{"Subtotal:", money(inv.Subtotal), false},
		{"Tax (10%):", money(inv.Tax), false},
		{"TOTAL:", money(inv.Total), true},
	}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: render invoice: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderStatement renders a monthly statement PDF and returns its bytes.
func (g *MarotoRenderer) RenderStatement(st *documents.Statement) ([]byte, error) {
	m := newDocument("Statement")

	m.AddRows(headerRow("STATEMENT", "", st.IssuedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("ISSUER", st.Issuer))
	m.AddRows(partyRow("BILL TO", st.BillTo))
	m.AddRows(periodRow(st.From, st.To))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		headerCell("Center Code", 2, align.Left),
		headerCell("Center", 4, align.Left),
		headerCell("Orders", 1, align.Center),
		headerCell("Amount", 3, align.Right),
		headerCell("CO2 (kg)", 2, align.Right),
	))
	for _, r := range st.Rows {
		m.AddRows(row.New(6).Add(
			bodyCell(r.CenterCode, 2, align.Left),
			bodyCell(r.CenterName, 4, align.Left),
			bodyCell(fmt.Sprintf("%d", r.OrderCount), 1, align.Center),
			bodyCell(money(r.Amount), 3, align.Right),
			bodyCell(r.CO2.StringFixed(2), 2, align.Right),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([]totalLine{
		{"CO2 total (kg):", st.CO2Total.StringFixed(2), false},
		{"TOTAL:", money(st.Total), true},
	}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: render statement: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderShippingRequest renders a shipping request sheet and returns its bytes.
func (g *MarotoRenderer) RenderShippingRequest(sr *documents.ShippingRequest) ([]byte, error) {
	m := newDocument("Shipping Request")

	m.AddRows(headerRow("SHIPPING REQUEST", "", sr.IssuedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("MANUFACTURER", sr.Manufacturer))
	m.AddRows(periodRow(sr.From, sr.To))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		headerCell("Order No", 2, align.Left),
		headerCell("Date", 1, align.Center),
		headerCell("Ship To", 3, align.Left),
		headerCell("Item", 4, align.Left),
		headerCell("Qty", 2, align.Right),
	))
	for _, l := range sr.Lines {
		m.AddRows(row.New(9).Add(
			bodyCell(l.OrderNo, 2, align.Left),
			bodyCell(l.OrderDate.Format(dateFormat), 1, align.Center),
			col.New(3).Add(
				text.New(l.CenterName, props.Text{Size: 8, Top: 1, Left: 1}),
				text.New(l.ShipAddress, props.Text{Size: 6.5, Top: 5, Left: 1, Color: colorGray}),
			),
			col.New(4).Add(
				text.New(l.ItemCode, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray}),
				text.New(l.ItemName, props.Text{Size: 8, Top: 5, Left: 1}),
			),
			bodyCell(fmt.Sprintf("%d", l.Quantity), 2, align.Right),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: render shipping request: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: document title (left) and number + issue date (right).
func headerRow(title, number string, issuedAt time.Time) core.Row {
	right := []core.Component{
		text.New("Issued: "+issuedAt.Format(dateFormat), props.Text{
			Size: 8, Align: align.Right, Top: 10, Color: colorGray,
		}),
	}
	if number != "" {
		right = append(right, text.New(number, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 3,
		}))
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(right...),
	)
}

// partyRow: one labeled address block.
func partyRow(label string, p documents.Party) core.Row {
	name := p.Name
	if p.Code != "" {
		name = fmt.Sprintf("%s (%s)", p.Name, p.Code)
	}
	return row.New(13).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(p.Address, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

// periodRow: billed or requested date range.
func periodRow(from, to time.Time) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Period: %s to %s", from.Format(dateFormat), to.Format(dateFormat)),
			props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func bodyCell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func tableHeaderRow(cols ...core.Col) core.Row {
	return row.New(8).Add(cols...)
}

type totalLine struct {
	label string
	value string
	grand bool
}

// totalsRow: totals block aligned to the right, grand total emphasized.
func totalsRow(lines []totalLine) core.Row {
	labels := make([]core.Component, 0, len(lines))
	values := make([]core.Component, 0, len(lines))
	top := 1.0
	for _, l := range lines {
		lp := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}
		vp := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if l.grand {
			lp.Size, lp.Color = 10, colorPrimary
			vp.Size, vp.Color, vp.Style = 10, colorPrimary, fontstyle.Bold
		}
		labels = append(labels, text.New(l.label, lp))
		values = append(values, text.New(l.value, vp))
		top += 6
	}
	return row.New(float64(len(lines)*6 + 4)).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

// money inserts thousands separators into a whole-number amount.
// "25000" becomes "25,000".
func money(d decimal.Decimal) string {
	s := d.StringFixed(0)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(s) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, c)
		}
		s = string(buf)
	}
	if neg {
		s = "-" + s
	}
	return s
}

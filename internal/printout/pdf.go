package printout

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"docdesk/internal/domain"
)

// ContentType is the MIME type of a rendered printout.
const ContentType = "application/pdf"

// Printer renders documents to PDF.
type Printer struct{}

// New creates a Printer.
func New() *Printer {
	return &Printer{}
}

// Print renders doc as a single PDF.
func (p *Printer) Print(doc *domain.Document) ([]byte, error) {
	if doc == nil {
		return nil, domain.ErrNoCurrentDocument
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)
	v := BuildView(doc)

	addHeader(m, v)
	addParties(m, v)
	addItems(m, v)
	addTotals(m, v)
	addPaymentInfo(m, v)
	addSignature(m)
	addTerms(m, v)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("printout.Print: %w", err)
	}
	return out.GetBytes(), nil
}

func addHeader(m core.Maroto, v View) {
	m.AddRow(12,
		text.NewCol(8, v.CompanyName, props.Text{Size: 16, Style: fontstyle.Bold}),
		text.NewCol(4, v.Title, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right}),
	)
	if v.StatusBadge != "" {
		m.AddRow(6,
			col.New(8),
			text.NewCol(4, v.StatusBadge, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		)
	}

	n := len(v.AddressLines)
	if len(v.Meta) > n {
		n = len(v.Meta)
	}
	for i := 0; i < n; i++ {
		left, right := "", ""
		if i < len(v.AddressLines) {
			left = v.AddressLines[i]
		}
		if i < len(v.Meta) {
			right = v.Meta[i].Label + " " + v.Meta[i].Value
		}
		m.AddRow(5,
			text.NewCol(7, left, props.Text{Size: 9}),
			text.NewCol(5, right, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(4, line.NewCol(12))
}

func addParties(m core.Maroto, v View) {
	m.AddRow(8,
		text.NewCol(6, v.FromHeading, props.Text{Size: 11, Style: fontstyle.Bold, Top: 2}),
		text.NewCol(6, v.ToHeading, props.Text{Size: 11, Style: fontstyle.Bold, Top: 2}),
	)

	from := append([]string{v.CompanyName}, v.AddressLines...)
	n := len(from)
	if len(v.ClientLines) > n {
		n = len(v.ClientLines)
	}
	for i := 0; i < n; i++ {
		left, right := "", ""
		if i < len(from) {
			left = from[i]
		}
		if i < len(v.ClientLines) {
			right = v.ClientLines[i]
		}
		style := fontstyle.Normal
		if i == 0 {
			style = fontstyle.Bold
		}
		m.AddRow(5,
			text.NewCol(6, left, props.Text{Size: 9, Style: style}),
			text.NewCol(6, right, props.Text{Size: 9, Style: style}),
		)
	}
}

var itemColumns = []struct {
	title     string
	size      int
	alignment align.Type
}{
	{"S.No", 1, align.Left},
	{"Description", 3, align.Left},
	{"GST Rate", 1, align.Right},
	{"Quantity", 1, align.Right},
	{"Rate", 1, align.Right},
	{"Amount", 1, align.Right},
	{"CGST", 1, align.Right},
	{"SGST", 1, align.Right},
	{"Total", 2, align.Right},
}

func addItems(m core.Maroto, v View) {
	m.AddRow(4)

	header := make([]core.Col, len(itemColumns))
	for i, c := range itemColumns {
		header[i] = text.NewCol(c.size, c.title, props.Text{Size: 8, Style: fontstyle.Bold, Align: c.alignment})
	}
	m.AddRow(7, header...)
	m.AddRow(2, line.NewCol(12))

	for _, item := range v.Items {
		values := []string{
			item.SNo, item.Description, item.GSTRate, item.Quantity, item.Rate,
			item.Amount, item.CGST, item.SGST, item.Total,
		}
		cols := make([]core.Col, len(itemColumns))
		for i, c := range itemColumns {
			cols[i] = text.NewCol(c.size, values[i], props.Text{Size: 8, Align: c.alignment})
		}
		m.AddRow(6, cols...)
	}
	m.AddRow(2, line.NewCol(12))
}

func addTotals(m core.Maroto, v View) {
	last := len(v.Totals) - 1
	for i, f := range v.Totals {
		style := fontstyle.Normal
		if i == last {
			style = fontstyle.Bold
		}
		m.AddRow(6,
			col.New(7),
			text.NewCol(3, f.Label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, f.Value, props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}
}

func addPaymentInfo(m core.Maroto, v View) {
	if len(v.PaymentInfo) == 0 {
		return
	}
	m.AddRow(10, text.NewCol(12, "Payment Information", props.Text{Size: 11, Style: fontstyle.Bold, Top: 4}))
	for _, f := range v.PaymentInfo {
		m.AddRow(5,
			text.NewCol(3, f.Label, props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(9, f.Value, props.Text{Size: 9}),
		)
	}
}

func addSignature(m core.Maroto) {
	m.AddRow(20)
	m.AddRow(2, col.New(8), line.NewCol(4))
	m.AddRow(6,
		col.New(8),
		text.NewCol(4, "Authorized Signatory", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center}),
	)
}

func addTerms(m core.Maroto, v View) {
	if len(v.TermsLines) == 0 {
		return
	}
	m.AddRow(10, text.NewCol(12, "Terms and Conditions", props.Text{Size: 11, Style: fontstyle.Bold, Top: 4}))
	for _, l := range v.TermsLines {
		m.AddRow(5, text.NewCol(12, l, props.Text{Size: 8}))
	}
}

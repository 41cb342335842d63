// Package documents assembles the printable documents: invoices and monthly
// statements per billing center, and shipping request sheets per
// manufacturer. Assembly is pure data; rendering goes through the Renderer
// port.
package documents

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is the consumption tax applied on invoice subtotals.
var TaxRate = decimal.New(1, -1) // 10%

// Party is an address block on a document.
type Party struct {
	Name    string
	Code    string
	Address string
}

// InvoiceLine is one invoiced order.
type InvoiceLine struct {
	OrderNo    string
	OrderDate  time.Time
	CenterName string
	Status     string
	Amount     decimal.Decimal
}

// Invoice bills a billing center for the shipped and delivered orders of its
// receiving centers over a period.
type Invoice struct {
	InvoiceNo string
	IssuedAt  time.Time
	From      time.Time
	To        time.Time
	Issuer    Party
	BillTo    Party
	Lines     []InvoiceLine
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// StatementRow aggregates one receiving center on a statement.
type StatementRow struct {
	CenterCode string
	CenterName string
	OrderCount int
	Amount     decimal.Decimal
	CO2        decimal.Decimal
}

// Statement summarizes a billing center's activity per receiving center.
type Statement struct {
	IssuedAt time.Time
	From     time.Time
	To       time.Time
	Issuer   Party
	BillTo   Party
	Rows     []StatementRow
	Total    decimal.Decimal
	CO2Total decimal.Decimal
}

// ShippingRequestLine is one item position a manufacturer must ship.
type ShippingRequestLine struct {
	OrderNo     string
	OrderDate   time.Time
	CenterName  string
	ShipAddress string
	ItemCode    string
	ItemName    string
	Quantity    int64
}

// ShippingRequest asks a manufacturer to ship the confirmed lines of its
// items within a period.
type ShippingRequest struct {
	IssuedAt     time.Time
	From         time.Time
	To           time.Time
	Manufacturer Party
	Lines        []ShippingRequestLine
}

// Renderer turns an assembled document into bytes (PDF in production).
type Renderer interface {
	RenderInvoice(inv *Invoice) ([]byte, error)
	RenderStatement(st *Statement) ([]byte, error)
	RenderShippingRequest(sr *ShippingRequest) ([]byte, error)
}

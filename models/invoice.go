package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"wrenchking-billing/utils"
)

// Status values stored on an invoice. Anything outside this set round-trips
// verbatim; EffectiveStatus decides how it filters and displays.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Tax-rate defaults differ by entry point: records ingested from the store
// default to 10%, blank form drafts start at 0%.
const (
	DefaultTaxRate     = 10.0
	FormDefaultTaxRate = 0.0
)

// DefaultCurrency is the single supported currency code. Not user-editable.
const DefaultCurrency = "INR"

// DefaultNotes is the free-text default appended to new invoices.
const DefaultNotes = "Thank you for your business!"

// Issuing-company defaults, substituted field-by-field when the "from"
// block comes back missing or blank.
const (
	DefaultFromName    = "Your Company Name"
	DefaultFromAddress = "123 Business Street"
	DefaultFromCity    = "City, State 12345"
	DefaultFromEmail   = "billing@yourcompany.com"
	DefaultFromPhone   = "(555) 123-4567"
	DefaultFromWebsite = "www.yourcompany.com"
)

// Contact is the issuing-company block on an invoice.
type Contact struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// Client is the billed party, including the serviced vehicle.
type Client struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	VehicleName   string `json:"vehicleName"`
	VehicleNumber string `json:"vehicleNumber"`
}

// LineItem is one billable row. Total is derived from the other numeric
// fields; Recalculate keeps it current before anything is persisted.
type LineItem struct {
	ID            string  `json:"id"`
	Description   string  `json:"description" validate:"required"`
	Quantity      float64 `json:"quantity" validate:"gt=0"`
	Price         float64 `json:"price" validate:"gte=0"`
	ServiceCharge float64 `json:"serviceCharge" validate:"gte=0"`
	Total         float64 `json:"total"`
}

// Invoice is the central billing document. Subtotal, Tax and Total are
// derived from Items and TaxRate but persisted alongside them; save paths
// must recompute them so the stored values always equal the recomputation.
type Invoice struct {
	ID            string     `json:"_id,omitempty"`
	InvoiceNumber string     `json:"invoiceNumber" validate:"required"`
	Date          string     `json:"date"`
	From          Contact    `json:"from"`
	To            Client     `json:"to"`
	Items         []LineItem `json:"items" validate:"required,min=1,dive"`
	Notes         string     `json:"notes"`
	TaxRate       float64    `json:"taxRate"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	CreatedAt     string     `json:"createdAt,omitempty"`
	UpdatedAt     string     `json:"updatedAt,omitempty"`
}

// EffectiveStatus collapses the stored status to the two values the list
// and preview understand: "paid" stays "paid", everything else counts as
// "pending". The stored value itself is never rewritten.
func (inv Invoice) EffectiveStatus() string {
	if inv.Status == StatusPaid {
		return StatusPaid
	}
	return StatusPending
}

// NewInvoice returns the default structure for a not-yet-persisted invoice:
// generated invoice number, today's date, company defaults, one blank item.
func NewInvoice() Invoice {
	now := time.Now().UTC().Format(time.RFC3339)
	return Invoice{
		InvoiceNumber: NewInvoiceNumber(),
		Date:          utils.TodayDateString(),
		From: Contact{
			Name:    DefaultFromName,
			Address: DefaultFromAddress,
			City:    DefaultFromCity,
			Email:   DefaultFromEmail,
			Phone:   DefaultFromPhone,
			Website: DefaultFromWebsite,
		},
		Items:     []LineItem{NewLineItem()},
		Notes:     DefaultNotes,
		TaxRate:   DefaultTaxRate,
		Currency:  DefaultCurrency,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewLineItem returns a blank placeholder row with quantity 1.
func NewLineItem() LineItem {
	return LineItem{ID: newItemID(), Quantity: 1}
}

// NewInvoiceNumber derives a default number from the current time:
// "INV-" plus the last six digits of the unix-millisecond clock.
func NewInvoiceNumber() string {
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return "INV-" + ms[len(ms)-6:]
}

// newItemID is a client-local identifier: time-based prefix plus a random
// tie-break. Used only for row identity, never as a durable key.
func newItemID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

package models

import (
	"encoding/json"
	"strconv"
	"time"

	"wrenchking-billing/utils"
)

// Normalize coerces an arbitrary decoded JSON value into a fully populated
// Invoice. It never fails: missing, blank or wrong-typed fields are replaced
// with their documented defaults and valid values pass through untouched,
// which makes the function idempotent. Every record received from the remote
// store goes through here before anything else sees it.
func Normalize(raw any) Invoice {
	return normalize(raw, DefaultTaxRate)
}

// NormalizeForm applies the same coercion with the blank-form tax-rate
// default of 0. Used for drafts arriving from the invoice form.
func NormalizeForm(raw any) Invoice {
	return normalize(raw, FormDefaultTaxRate)
}

// NormalizeJSON decodes b and normalizes the result. Undecodable bytes yield
// a fresh default invoice, per the never-fails contract.
func NormalizeJSON(b []byte) Invoice {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return Normalize(nil)
	}
	return Normalize(raw)
}

func normalize(raw any, defaultTaxRate float64) Invoice {
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		inv := NewInvoice()
		inv.TaxRate = defaultTaxRate
		return inv
	}

	now := time.Now().UTC().Format(time.RFC3339)
	from := asMap(m["from"])
	to := asMap(m["to"])

	date := strField(m, "date", "")
	if !utils.IsValidDate(date) {
		date = utils.TodayDateString()
	}

	return Invoice{
		ID:            strField(m, "_id", ""),
		InvoiceNumber: strField(m, "invoiceNumber", NewInvoiceNumber()),
		Date:          date,
		From: Contact{
			Name:    strField(from, "name", DefaultFromName),
			Address: strField(from, "address", DefaultFromAddress),
			City:    strField(from, "city", DefaultFromCity),
			Email:   strField(from, "email", DefaultFromEmail),
			Phone:   strField(from, "phone", DefaultFromPhone),
			Website: strField(from, "website", DefaultFromWebsite),
		},
		To: Client{
			Name:          strField(to, "name", ""),
			Address:       strField(to, "address", ""),
			City:          strField(to, "city", ""),
			Phone:         strField(to, "phone", ""),
			VehicleName:   strField(to, "vehicleName", ""),
			VehicleNumber: strField(to, "vehicleNumber", ""),
		},
		Items:     normalizeItems(m["items"]),
		Notes:     strField(m, "notes", DefaultNotes),
		TaxRate:   numField(m, "taxRate", defaultTaxRate),
		Currency:  strField(m, "currency", DefaultCurrency),
		Status:    strField(m, "status", StatusPending),
		Subtotal:  numField(m, "subtotal", 0),
		Tax:       numField(m, "tax", 0),
		Total:     numField(m, "total", 0),
		CreatedAt: strField(m, "createdAt", now),
		UpdatedAt: strField(m, "updatedAt", now),
	}
}

// normalizeItems guarantees at least one placeholder row. Stored line totals
// are repaired in shape only, never recomputed here; Recalculate owns that.
func normalizeItems(raw any) []LineItem {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return []LineItem{NewLineItem()}
	}
	items := make([]LineItem, 0, len(list))
	for _, el := range list {
		items = append(items, normalizeItem(el))
	}
	return items
}

func normalizeItem(raw any) LineItem {
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		return NewLineItem()
	}
	item := LineItem{
		ID:            idField(m, "id"),
		Description:   strField(m, "description", ""),
		Quantity:      numField(m, "quantity", 1),
		Price:         numField(m, "price", 0),
		ServiceCharge: numField(m, "serviceCharge", 0),
		Total:         numField(m, "total", 0),
	}
	if item.ID == "" {
		item.ID = newItemID()
	}
	return item
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func strField(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func numField(m map[string]any, key string, def float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int: // hand-built maps in tests; encoding/json only produces float64
		return float64(v)
	}
	return def
}

// idField accepts the identifier as a string or, for records written by
// older clients, a number, which is coerced to its decimal string so the
// value is stable across round trips.
func idField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

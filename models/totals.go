package models

// TotalSet is the derived monetary roll-up of an invoice.
type TotalSet struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// LineTotal computes one item's total. No rounding happens here or anywhere
// below the display layer, so repeated recomputation during editing cannot
// accumulate rounding error.
func LineTotal(quantity, price, serviceCharge float64) float64 {
	return quantity*price + serviceCharge
}

// Totals aggregates already-computed line totals with the tax rate as a
// percentage. Callers must keep item totals current (LineTotal) first;
// stored totals are used as-is.
func Totals(items []LineItem, taxRate float64) TotalSet {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}
	tax := subtotal * (taxRate / 100)
	return TotalSet{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// Recalculate returns a copy of inv with every line total and the invoice
// totals recomputed from quantity, price, service charge and tax rate.
// Save paths run this before submitting so persisted totals always equal
// their recomputation. The input is not mutated.
func Recalculate(inv Invoice) Invoice {
	items := make([]LineItem, len(inv.Items))
	for i, item := range inv.Items {
		item.Total = LineTotal(item.Quantity, item.Price, item.ServiceCharge)
		items[i] = item
	}
	inv.Items = items
	t := Totals(items, inv.TaxRate)
	inv.Subtotal = t.Subtotal
	inv.Tax = t.Tax
	inv.Total = t.Total
	return inv
}

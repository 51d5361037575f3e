package models

import (
	"sort"
	"strings"
	"time"

	"wrenchking-billing/utils"
)

// Status filter and sort vocabulary for the list view.
const (
	FilterAll = "all"

	SortByDate   = "date"
	SortByTotal  = "total"
	SortByClient = "client"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Criteria describes one list-view configuration. Zero values for Status,
// SortBy and SortOrder fall back to the list defaults.
type Criteria struct {
	Status    string
	Search    string
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
}

// DefaultCriteria matches the list view's initial controls: all statuses,
// newest first.
func DefaultCriteria() Criteria {
	return Criteria{Status: FilterAll, SortBy: SortByDate, SortOrder: SortDesc}
}

// Query filters and sorts a collection of normalized invoices. Pure: the
// input slice and its elements are never mutated, a new slice comes back.
func Query(invoices []Invoice, crit Criteria) []Invoice {
	search := strings.ToLower(strings.TrimSpace(crit.Search))
	start, hasStart := utils.ParseDate(crit.StartDate)
	end, hasEnd := utils.ParseDate(crit.EndDate)

	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if crit.Status != "" && crit.Status != FilterAll && inv.EffectiveStatus() != crit.Status {
			continue
		}
		if search != "" && !matchesSearch(inv, search) {
			continue
		}
		if hasStart || hasEnd {
			// An unparseable invoice date fails the range check, quietly.
			d, ok := utils.ParseDate(inv.Date)
			if hasStart && (!ok || d.Before(start)) {
				continue
			}
			if hasEnd && (!ok || d.After(end)) {
				continue
			}
		}
		out = append(out, inv)
	}

	less := lessFunc(crit.SortBy)
	asc := crit.SortOrder == SortAsc
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

// matchesSearch is a case-insensitive substring match against the invoice
// number, vehicle number and client phone.
func matchesSearch(inv Invoice, search string) bool {
	return strings.Contains(strings.ToLower(inv.InvoiceNumber), search) ||
		strings.Contains(strings.ToLower(inv.To.VehicleNumber), search) ||
		strings.Contains(strings.ToLower(inv.To.Phone), search)
}

func lessFunc(sortBy string) func(a, b Invoice) bool {
	switch sortBy {
	case SortByTotal:
		return func(a, b Invoice) bool { return a.Total < b.Total }
	case SortByClient:
		return func(a, b Invoice) bool {
			return strings.ToLower(a.To.Name) < strings.ToLower(b.To.Name)
		}
	default: // date
		return func(a, b Invoice) bool {
			return sortDate(a.Date).Before(sortDate(b.Date))
		}
	}
}

// sortDate maps unparseable dates to the zero time so they gather at the
// old end of the ordering instead of breaking the comparator.
func sortDate(s string) time.Time {
	d, _ := utils.ParseDate(s)
	return d
}

package store

import (
	"context"
	"sync"

	"wrenchking-billing/models"
)

// Store holds the in-memory invoice collection and coordinates it with the
// remote store. Reads serve from memory; every mutation goes to the remote
// first and the collection changes only from the remote's re-normalized
// response, so any failed call leaves the last known good state intact.
type Store struct {
	client *Client

	mu       sync.RWMutex
	invoices []models.Invoice
}

// Stats is the dashboard roll-up shown above the list.
type Stats struct {
	Total       int     `json:"total"`
	Paid        int     `json:"paid"`
	Pending     int     `json:"pending"`
	TotalAmount float64 `json:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount"`
}

// New builds a store over the given remote client. The collection starts
// empty until Load succeeds.
func New(client *Client) *Store {
	return &Store{client: client}
}

// Load replaces the collection with the remote's current contents, every
// record normalized on the way in.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.client.GetAll(ctx)
	if err != nil {
		return err
	}
	invoices := make([]models.Invoice, 0, len(raw))
	for _, r := range raw {
		invoices = append(invoices, models.Normalize(r))
	}
	s.mu.Lock()
	s.invoices = invoices
	s.mu.Unlock()
	return nil
}

// Invoices returns a copy of the collection in its current order.
func (s *Store) Invoices() []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// Get looks an invoice up by id in the in-memory collection.
func (s *Store) Get(id string) (models.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return models.Invoice{}, false
}

// Count returns the collection size.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invoices)
}

// Create persists a draft remotely and prepends the stored result, newest
// first like the list view.
func (s *Store) Create(ctx context.Context, draft models.Invoice) (models.Invoice, error) {
	raw, err := s.client.Create(ctx, draft)
	if err != nil {
		return models.Invoice{}, err
	}
	inv := models.Normalize(raw)
	s.mu.Lock()
	s.invoices = append([]models.Invoice{inv}, s.invoices...)
	s.mu.Unlock()
	return inv, nil
}

// Update persists a draft remotely and swaps the stored result in.
func (s *Store) Update(ctx context.Context, id string, draft models.Invoice) (models.Invoice, error) {
	raw, err := s.client.Update(ctx, id, draft)
	if err != nil {
		return models.Invoice{}, err
	}
	inv := models.Normalize(raw)
	s.replace(id, inv)
	return inv, nil
}

// Delete removes the invoice remotely, then locally.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.invoices[:0]
	for _, inv := range s.invoices {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	s.invoices = kept
	s.mu.Unlock()
	return nil
}

// MarkPaid flips the invoice to paid via the remote store and swaps the
// refreshed record in.
func (s *Store) MarkPaid(ctx context.Context, id string) (models.Invoice, error) {
	raw, err := s.client.MarkAsPaid(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}
	inv := models.Normalize(raw)
	s.replace(id, inv)
	return inv, nil
}

// Stats rolls the collection up by effective status.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Total: len(s.invoices)}
	for _, inv := range s.invoices {
		st.TotalAmount += inv.Total
		if inv.EffectiveStatus() == models.StatusPaid {
			st.Paid++
			st.PaidAmount += inv.Total
		} else {
			st.Pending++
		}
	}
	return st
}

func (s *Store) replace(id string, inv models.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			s.invoices[i] = inv
			return
		}
	}
	// The id was not loaded yet (e.g. created by another session); keep the
	// fresh record rather than dropping it.
	s.invoices = append([]models.Invoice{inv}, s.invoices...)
}

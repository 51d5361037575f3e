package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrenchking-billing/models"
	"wrenchking-billing/store"
)

// fakeRemote is a minimal stand-in for the external invoice API.
type fakeRemote struct {
	srv    *httptest.Server
	fail   atomic.Bool
	nextID atomic.Int64
}

func newFakeRemote(t *testing.T, seed ...string) *fakeRemote {
	t.Helper()
	f := &fakeRemote{}
	records := map[string]map[string]any{}
	order := []string{}
	for _, s := range seed {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(s), &m))
		id := m["_id"].(string)
		records[id] = m
		order = append(order, id)
	}

	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"store down"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		path := strings.TrimPrefix(r.URL.Path, "/invoices")
		switch {
		case path == "" && r.Method == http.MethodGet:
			out := make([]map[string]any, 0, len(order))
			for _, id := range order {
				if m, ok := records[id]; ok {
					out = append(out, m)
				}
			}
			json.NewEncoder(w).Encode(out)
		case path == "" && r.Method == http.MethodPost:
			var m map[string]any
			json.NewDecoder(r.Body).Decode(&m)
			id := "gen-" + strconv.FormatInt(f.nextID.Add(1), 10)
			m["_id"] = id
			records[id] = m
			order = append(order, id)
			json.NewEncoder(w).Encode(m)
		case strings.HasSuffix(path, "/paid") && r.Method == http.MethodPatch:
			id := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/paid")
			m := records[id]
			m["status"] = "paid"
			json.NewEncoder(w).Encode(m)
		case r.Method == http.MethodPut:
			id := strings.TrimPrefix(path, "/")
			var m map[string]any
			json.NewDecoder(r.Body).Decode(&m)
			m["_id"] = id
			records[id] = m
			json.NewEncoder(w).Encode(m)
		case r.Method == http.MethodDelete:
			delete(records, strings.TrimPrefix(path, "/"))
			w.Write([]byte(`{"message":"deleted"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeRemote) store() *store.Store {
	return store.New(store.NewClient(f.srv.URL, 0))
}

func TestStoreLoadNormalizes(t *testing.T) {
	f := newFakeRemote(t,
		`{"_id":"a","invoiceNumber":"INV-1","items":"broken","taxRate":"x"}`,
		`{"_id":"b","invoiceNumber":"INV-2","status":"paid","total":770}`,
	)
	s := f.store()

	require.NoError(t, s.Load(context.Background()))
	invoices := s.Invoices()
	require.Len(t, invoices, 2)

	assert.Equal(t, "INV-1", invoices[0].InvoiceNumber)
	require.NotEmpty(t, invoices[0].Items, "malformed items repaired on load")
	assert.Equal(t, models.DefaultTaxRate, invoices[0].TaxRate)
	assert.Equal(t, models.StatusPaid, invoices[1].EffectiveStatus())
}

func TestStoreCreatePrepends(t *testing.T) {
	f := newFakeRemote(t, `{"_id":"a","invoiceNumber":"INV-1"}`)
	s := f.store()
	require.NoError(t, s.Load(context.Background()))

	draft := models.NewInvoice()
	draft.To.Name = "Ravi"
	created, err := s.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "store-assigned id is kept")

	invoices := s.Invoices()
	require.Len(t, invoices, 2)
	assert.Equal(t, created.ID, invoices[0].ID, "newest first")
}

func TestStoreUpdateReplaces(t *testing.T) {
	f := newFakeRemote(t, `{"_id":"a","invoiceNumber":"INV-1","to":{"name":"Old"}}`)
	s := f.store()
	require.NoError(t, s.Load(context.Background()))

	draft, ok := s.Get("a")
	require.True(t, ok)
	draft.To.Name = "New Name"

	updated, err := s.Update(context.Background(), "a", draft)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.To.Name)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "New Name", got.To.Name)
	assert.Equal(t, 1, s.Count())
}

func TestStoreDelete(t *testing.T) {
	f := newFakeRemote(t, `{"_id":"a","invoiceNumber":"INV-1"}`, `{"_id":"b","invoiceNumber":"INV-2"}`)
	s := f.store()
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Delete(context.Background(), "a"))
	assert.Equal(t, 1, s.Count())
	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestStoreMarkPaid(t *testing.T) {
	f := newFakeRemote(t, `{"_id":"a","invoiceNumber":"INV-1","status":"pending"}`)
	s := f.store()
	require.NoError(t, s.Load(context.Background()))

	inv, err := s.MarkPaid(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, inv.Status)

	got, _ := s.Get("a")
	assert.Equal(t, models.StatusPaid, got.EffectiveStatus())
}

func TestStoreFailureKeepsLastKnownGood(t *testing.T) {
	f := newFakeRemote(t, `{"_id":"a","invoiceNumber":"INV-1"}`)
	s := f.store()
	require.NoError(t, s.Load(context.Background()))
	before := s.Invoices()

	f.fail.Store(true)

	_, err := s.Create(context.Background(), models.NewInvoice())
	assert.Error(t, err)
	_, err = s.MarkPaid(context.Background(), "a")
	assert.Error(t, err)
	assert.Error(t, s.Delete(context.Background(), "a"))
	assert.Error(t, s.Load(context.Background()))

	assert.Equal(t, before, s.Invoices(), "every failure leaves the collection untouched")
}

func TestStoreStats(t *testing.T) {
	f := newFakeRemote(t,
		`{"_id":"a","invoiceNumber":"INV-1","status":"paid","total":770}`,
		`{"_id":"b","invoiceNumber":"INV-2","status":"pending","total":200}`,
		`{"_id":"c","invoiceNumber":"INV-3","status":"archived","total":30}`,
	)
	s := f.store()
	require.NoError(t, s.Load(context.Background()))

	st := s.Stats()
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Paid)
	assert.Equal(t, 2, st.Pending, "non-paid statuses count as pending")
	assert.Equal(t, 1000.0, st.TotalAmount)
	assert.Equal(t, 770.0, st.PaidAmount)
}

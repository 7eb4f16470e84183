package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelune/formgate/internal/handler"
	"github.com/avelune/formgate/internal/middleware"
	"github.com/avelune/formgate/internal/repository"
	"github.com/avelune/formgate/internal/server"
	"github.com/avelune/formgate/internal/service"
)

// fakeFormStore backs the handler tests with an in-memory store that
// follows the repository's error contract.
type fakeFormStore struct {
	entries map[int64]repository.FormEntry
	nextID  int64
}

func newFakeFormStore() *fakeFormStore {
	return &fakeFormStore{
		entries: map[int64]repository.FormEntry{},
		nextID:  1,
	}
}

func (f *fakeFormStore) Save(ctx context.Context, entry *repository.FormEntry) error {
	if entry.IsNew() {
		entry.ID = f.nextID
		entry.CreatedAt = time.Now()
		f.nextID++
	}
	f.entries[entry.ID] = *entry
	return nil
}

func (f *fakeFormStore) GetByID(ctx context.Context, id int64) (*repository.FormEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, fmt.Errorf("table:landingpage_form: %w", pgx.ErrNoRows)
	}
	return &entry, nil
}

func (f *fakeFormStore) Delete(ctx context.Context, entry *repository.FormEntry) error {
	if _, ok := f.entries[entry.ID]; !ok {
		return &repository.CouldNotDeleteError{
			Cause: fmt.Errorf("table:landingpage_form: %w", pgx.ErrNoRows),
		}
	}
	delete(f.entries, entry.ID)
	return nil
}

func (f *fakeFormStore) List(ctx context.Context, filter repository.ListFilter) ([]repository.FormEntry, error) {
	var out []repository.FormEntry
	for id := f.nextID - 1; id >= 1; id-- {
		entry, ok := f.entries[id]
		if !ok {
			continue
		}
		if filter.CustomerID != nil && entry.CustomerID != *filter.CustomerID {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// newTestServer builds an echo instance wired like the real router
// minus auth, rate limiting, and tracing, which are exercised
// elsewhere and would only add noise here.
func newTestServer(t *testing.T) (*echo.Echo, *fakeFormStore) {
	t.Helper()

	nop := zerolog.Nop()
	s := &server.Server{Logger: &nop}

	store := newFakeFormStore()
	services := &service.Services{
		Form: service.NewFormService(s, store, nil),
	}
	h := handler.NewFormHandler(s, services)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler

	e.POST("/v1/forms",
		handler.Handle(h.Handler, h.Submit, http.StatusCreated,
			func() *handler.SubmitFormRequest { return &handler.SubmitFormRequest{} }))

	e.GET("/v1/admin/forms",
		handler.Handle(h.Handler, h.List, http.StatusOK,
			func() *handler.ListFormEntriesRequest { return &handler.ListFormEntriesRequest{} }))

	e.GET("/v1/admin/forms/export",
		handler.HandleFile(h.Handler, h.Export, http.StatusOK,
			func() *handler.ListFormEntriesRequest { return &handler.ListFormEntriesRequest{} },
			"form_entries.csv", "text/csv"))

	e.GET("/v1/admin/forms/:id",
		handler.Handle(h.Handler, h.Get, http.StatusOK,
			func() *handler.GetFormEntryRequest { return &handler.GetFormEntryRequest{} }))

	e.DELETE("/v1/admin/forms/:id",
		handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent,
			func() *handler.DeleteFormEntryRequest { return &handler.DeleteFormEntryRequest{} }))

	return e, store
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSubmitForm_Created(t *testing.T) {
	e, store := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/forms", `{"customer_id": 42, "comment": "hello"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var entry repository.FormEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, int64(1), entry.ID)
	assert.Equal(t, int64(42), entry.CustomerID)
	assert.Equal(t, "hello", entry.Comment)

	saved, err := store.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", saved.Comment)
}

func TestSubmitForm_EmptyPayloadRejected(t *testing.T) {
	e, store := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/forms", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Field string `json:"field"`
			Error string `json:"error"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BAD_REQUEST", body.Code)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Len(t, body.Errors, 2)

	// A rejected submission must not leave a row behind.
	assert.Empty(t, store.entries)
}

func TestSubmitForm_MalformedBodyRejected(t *testing.T) {
	e, store := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/forms", `{"customer_id": `)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.entries)
}

func TestSubmitForm_AcceptsFormEncoding(t *testing.T) {
	e, store := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/forms",
		strings.NewReader("customer_id=42&comment=from+a+landing+page"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.entries, 1)
	assert.Equal(t, "from a landing page", store.entries[1].Comment)
}

func TestGetFormEntry(t *testing.T) {
	e, store := newTestServer(t)
	require.NoError(t, store.Save(context.Background(), &repository.FormEntry{CustomerID: 42, Comment: "hello"}))

	t.Run("existing", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/admin/forms/1", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var entry repository.FormEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
		assert.Equal(t, int64(1), entry.ID)
		assert.Equal(t, "hello", entry.Comment)
	})

	t.Run("missing returns 404 naming the entity", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/admin/forms/999", "")

		require.Equal(t, http.StatusNotFound, rec.Code)

		var body struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "NOT_FOUND", body.Code)
		assert.Equal(t, "Landingpage Form not found", body.Message)
	})

	t.Run("non-positive id rejected", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/admin/forms/0", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteFormEntry(t *testing.T) {
	e, store := newTestServer(t)
	require.NoError(t, store.Save(context.Background(), &repository.FormEntry{CustomerID: 42, Comment: "hello"}))

	t.Run("existing returns 204 and removes the row", func(t *testing.T) {
		rec := doJSON(e, http.MethodDelete, "/v1/admin/forms/1", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Empty(t, store.entries)
	})

	t.Run("missing returns 404", func(t *testing.T) {
		rec := doJSON(e, http.MethodDelete, "/v1/admin/forms/999", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListFormEntries(t *testing.T) {
	e, store := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &repository.FormEntry{CustomerID: 10, Comment: "first"}))
	require.NoError(t, store.Save(ctx, &repository.FormEntry{CustomerID: 11, Comment: "second"}))
	require.NoError(t, store.Save(ctx, &repository.FormEntry{CustomerID: 10, Comment: "third"}))

	t.Run("all entries newest first", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/admin/forms", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Entries []repository.FormEntry `json:"entries"`
			Count   int                    `json:"count"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Count)
		require.Len(t, body.Entries, 3)
		assert.Equal(t, "third", body.Entries[0].Comment)
	})

	t.Run("filtered by customer", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/admin/forms?customer_id=11", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Entries []repository.FormEntry `json:"entries"`
			Count   int                    `json:"count"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Count)
	})

	t.Run("invalid limit rejected", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/admin/forms?limit=5000", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExportFormEntries(t *testing.T) {
	e, store := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &repository.FormEntry{CustomerID: 10, Comment: "first"}))
	require.NoError(t, store.Save(ctx, &repository.FormEntry{CustomerID: 11, Comment: "second"}))

	rec := doJSON(e, http.MethodGet, "/v1/admin/forms/export", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "form_entries.csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,customer_id,comment,created_at", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "second")
	assert.Contains(t, lines[2], "first")
}

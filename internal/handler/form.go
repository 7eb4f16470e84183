package handler

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/avelune/formgate/internal/repository"
	"github.com/avelune/formgate/internal/server"
	"github.com/avelune/formgate/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// FormHandler serves the public form submission endpoint and the
// admin CRUD surface over stored entries.
type FormHandler struct {
	Handler
	services *service.Services
}

// NewFormHandler constructs a FormHandler.
func NewFormHandler(s *server.Server, services *service.Services) *FormHandler {
	return &FormHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// SubmitFormRequest is the public submission payload. Both JSON and
// classic form posts bind into it.
type SubmitFormRequest struct {
	CustomerID int64  `json:"customer_id" form:"customer_id" validate:"required,gt=0"`
	Comment    string `json:"comment" form:"comment" validate:"required,min=1,max=4000"`
}

func (r *SubmitFormRequest) Validate() error {
	return validate.Struct(r)
}

// Submit persists a new form entry. An empty or invalid payload never
// reaches this point: the pipeline rejects it during validation, so
// no entity is constructed and no row is written.
func (h *FormHandler) Submit(c echo.Context, req *SubmitFormRequest) (*repository.FormEntry, error) {
	return h.services.Form.SubmitForm(c.Request().Context(), req.CustomerID, req.Comment)
}

// GetFormEntryRequest identifies one entry by path parameter.
type GetFormEntryRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *GetFormEntryRequest) Validate() error {
	return validate.Struct(r)
}

// Get returns one entry by id, or a 404 when no such row exists.
func (h *FormHandler) Get(c echo.Context, req *GetFormEntryRequest) (*repository.FormEntry, error) {
	return h.services.Form.GetEntry(c.Request().Context(), req.ID)
}

// ListFormEntriesRequest narrows and pages the admin listing.
type ListFormEntriesRequest struct {
	CustomerID *int64 `query:"customer_id" validate:"omitempty,gt=0"`
	Limit      int    `query:"limit" validate:"omitempty,gte=1,lte=200"`
	Offset     int    `query:"offset" validate:"omitempty,gte=0"`
}

func (r *ListFormEntriesRequest) Validate() error {
	return validate.Struct(r)
}

// ListFormEntriesResponse is the admin listing page.
type ListFormEntriesResponse struct {
	Entries []repository.FormEntry `json:"entries"`
	Count   int                    `json:"count"`
}

// List returns a page of entries, newest first.
func (h *FormHandler) List(c echo.Context, req *ListFormEntriesRequest) (*ListFormEntriesResponse, error) {
	entries, err := h.services.Form.ListEntries(c.Request().Context(), repository.ListFilter{
		CustomerID: req.CustomerID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &ListFormEntriesResponse{
		Entries: entries,
		Count:   len(entries),
	}, nil
}

// DeleteFormEntryRequest identifies the entry to delete.
type DeleteFormEntryRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *DeleteFormEntryRequest) Validate() error {
	return validate.Struct(r)
}

// Delete removes one entry. Missing entries read as 404 rather than
// as a delete failure.
func (h *FormHandler) Delete(c echo.Context, req *DeleteFormEntryRequest) error {
	return h.services.Form.DeleteEntry(c.Request().Context(), req.ID)
}

// Export streams the (filtered) entries as a CSV download for offline
// processing.
func (h *FormHandler) Export(c echo.Context, req *ListFormEntriesRequest) ([]byte, error) {
	entries, err := h.services.Form.ListEntries(c.Request().Context(), repository.ListFilter{
		CustomerID: req.CustomerID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "customer_id", "comment", "created_at"}); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		record := []string{
			strconv.FormatInt(entry.ID, 10),
			strconv.FormatInt(entry.CustomerID, 10),
			entry.Comment,
			entry.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

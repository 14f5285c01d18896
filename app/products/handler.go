package products

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
)

// FormController is the part of Controller the HTTP handlers drive.
type FormController interface {
	Submit(in FormInput) error
	BeginEdit(id int64)
	CancelEdit()
	RequestDeleteConfirmation(id int64)
	DeleteProduct(id int64, confirm ConfirmFunc) DeleteOutcome
	ConfirmDeletes() bool
	View() Page
}

type FormHandler struct {
	ctrl     FormController
	renderer *Renderer
}

func NewFormHandler(ctrl FormController, renderer *Renderer) *FormHandler {
	return &FormHandler{
		ctrl:     ctrl,
		renderer: renderer,
	}
}

// Register mounts the form routes on mux.
func (h *FormHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.HandlePage)
	mux.HandleFunc("POST /products", h.HandleSubmit)
	mux.HandleFunc("POST /products/reset", h.HandleReset)
	mux.HandleFunc("POST /products/{id}/edit", h.HandleEdit)
	mux.HandleFunc("POST /products/{id}/delete", h.HandleDelete)
}

func (h *FormHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, http.StatusOK)
}

func (h *FormHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	err := h.ctrl.Submit(FormInput{
		Name:        r.PostFormValue("name"),
		Price:       r.PostFormValue("price"),
		Description: r.PostFormValue("description"),
	})

	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		h.writePage(w, http.StatusUnprocessableEntity)
	case err != nil:
		slog.Error("Submit failed", "error", err)
		http.Error(w, "Failed to save product", http.StatusInternalServerError)
	default:
		redirectHome(w, r)
	}
}

func (h *FormHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.ctrl.CancelEdit()
	redirectHome(w, r)
}

func (h *FormHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	h.ctrl.BeginEdit(id)
	redirectHome(w, r)
}

// HandleDelete deletes at once when confirmations are off. Otherwise a post
// without a "confirm" field opens the dialog, and the dialog posts back
// confirm=yes or confirm=no.
func (h *FormHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if !h.ctrl.ConfirmDeletes() {
		h.ctrl.DeleteProduct(id, nil)
		redirectHome(w, r)
		return
	}

	answer := r.PostFormValue("confirm")
	if answer == "" {
		h.ctrl.RequestDeleteConfirmation(id)
		redirectHome(w, r)
		return
	}

	outcome := h.ctrl.DeleteProduct(id, func(string) bool { return answer == "yes" })
	slog.Debug("Delete handled", "product_id", id, "outcome", outcome.String())
	redirectHome(w, r)
}

func (h *FormHandler) writePage(w http.ResponseWriter, status int) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, h.ctrl.View()); err != nil {
		slog.Error("Render failed", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Write page failed", "error", err)
	}
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

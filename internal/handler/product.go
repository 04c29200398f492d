package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/budogu-admin/internal/domain/product"
)

// ListProducts returns every product ordered by id.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		mapError(w, r, errors.Wrap(err, "list products"))
		return
	}

	var e jx.Encoder
	product.EncodeList(&e, products)
	writeJSON(w, http.StatusOK, e.Bytes())
}

// GetProduct returns one product.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		mapError(w, r, err)
		return
	}
	writeProduct(w, http.StatusOK, p)
}

// CreateProduct validates the body and stores it as a new product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeInput(w, r)
	if !ok {
		return
	}
	created, err := h.products.Create(r.Context(), p)
	if err != nil {
		mapError(w, r, errors.Wrap(err, "create product"))
		return
	}
	h.countMutation(r, "create")
	writeProduct(w, http.StatusCreated, created)
}

// ReplaceProduct replaces every field of an existing product.
func (h *Handler) ReplaceProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, ok := decodeInput(w, r)
	if !ok {
		return
	}
	p.ID = id

	updated, err := h.products.Update(r.Context(), p)
	if err != nil {
		mapError(w, r, err)
		return
	}
	h.countMutation(r, "update")
	writeProduct(w, http.StatusOK, updated)
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		mapError(w, r, err)
		return
	}
	h.countMutation(r, "delete")
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

// decodeInput reads and validates a create or replace body.
func decodeInput(w http.ResponseWriter, r *http.Request) (product.Product, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return product.Product{}, false
	}

	var in product.Input
	if err := in.Decode(jx.DecodeBytes(body)); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return product.Product{}, false
	}
	p, err := in.Parse()
	if err != nil {
		mapError(w, r, err)
		return product.Product{}, false
	}
	return p, true
}

func writeProduct(w http.ResponseWriter, code int, p *product.Product) {
	var e jx.Encoder
	p.Encode(&e)
	writeJSON(w, code, e.Bytes())
}

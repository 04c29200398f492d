// Package handler serves the product collection API on a net/http mux.
package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/budogu-admin/internal/domain/auth"
	"github.com/xenking/budogu-admin/internal/domain/product"
)

// maxBodyBytes bounds create and replace request bodies.
const maxBodyBytes = 1 << 20

// Handler implements the /api/products routes, delegating persistence to
// a product repository.
type Handler struct {
	products  product.Repository
	keys      *auth.KeySet
	mutations metric.Int64Counter
}

// NewHandler constructs a Handler. A nil or empty key set leaves mutating
// routes open.
func NewHandler(products product.Repository, keys *auth.KeySet, mp metric.MeterProvider) (*Handler, error) {
	mutations, err := mp.Meter("github.com/xenking/budogu-admin/internal/handler").Int64Counter(
		"catalog.product.mutations",
		metric.WithDescription("Successful product creates, replaces and deletes"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create mutations counter")
	}
	return &Handler{
		products:  products,
		keys:      keys,
		mutations: mutations,
	}, nil
}

// Register mounts the routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("POST /api/products", h.requireAPIKey(h.CreateProduct))
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("PUT /api/products/{id}", h.requireAPIKey(h.ReplaceProduct))
	mux.HandleFunc("DELETE /api/products/{id}", h.requireAPIKey(h.DeleteProduct))
}

func (h *Handler) countMutation(r *http.Request, op string) {
	h.mutations.Add(r.Context(), 1, metric.WithAttributes(attribute.String("op", op)))
}

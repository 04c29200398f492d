// Package dashboard holds the per-session state of the catalog admin: the
// cached product list and the create/edit form.
package dashboard

import (
	"context"
	"slices"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/budogu-admin/internal/domain/product"
)

var (
	// ErrFormHidden is returned by operations that need an open form.
	ErrFormHidden = errors.New("form is not open")
	// ErrUnknownProduct is returned when an id is not in the cached list.
	ErrUnknownProduct = errors.New("product is not in the list")
)

// Catalog is the backend collection the dashboard edits.
type Catalog interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
	CreateProduct(ctx context.Context, in product.Input) (*product.Product, error)
	UpdateProduct(ctx context.Context, id int64, in product.Input) error
	DeleteProduct(ctx context.Context, id int64) error
}

// Controller owns the form state and the product list of one session.
//
// The list only changes when a fetch completes. The mutex is never held
// across catalog calls, so concurrent mutations each re-fetch and the last
// response wins.
type Controller struct {
	catalog Catalog

	mu       sync.Mutex
	products []product.Product
	loaded   bool
	failed   bool
	state    State
}

// NewController returns a Controller with a hidden form and no products.
func NewController(catalog Catalog) *Controller {
	return &Controller{
		catalog: catalog,
		state:   Hidden{},
	}
}

// Load fetches the product list. On failure the previous list is kept.
func (c *Controller) Load(ctx context.Context) error {
	products, err := c.catalog.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = true
	c.failed = err != nil
	if err != nil {
		zctx.From(ctx).Error("Failed to fetch products", zap.Error(err))
		return errors.Wrap(err, "list products")
	}
	c.products = products
	return nil
}

// Loaded reports whether a fetch has completed, successfully or not.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// LoadFailed reports whether the most recent fetch failed.
func (c *Controller) LoadFailed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}

// Products returns a copy of the last fetched list in server order.
func (c *Controller) Products() []product.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.products)
}

// State returns the current form state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OpenCreate shows an empty create form, discarding any open draft.
func (c *Controller) OpenCreate() {
	c.set(Creating{})
}

// OpenEdit shows the edit form prefilled from p.
func (c *Controller) OpenEdit(p product.Product) {
	c.set(Editing{ID: p.ID, Draft: p.Input()})
}

// OpenEditByID is OpenEdit for a product of the cached list.
func (c *Controller) OpenEditByID(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.products, func(p product.Product) bool { return p.ID == id })
	if i < 0 {
		return errors.Wrapf(ErrUnknownProduct, "id %d", id)
	}
	c.state = Editing{ID: id, Draft: c.products[i].Input()}
	return nil
}

// UpdateField sets one draft field. Values are not validated here.
func (c *Controller) UpdateField(f product.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, ok := DraftOf(c.state)
	if !ok {
		return ErrFormHidden
	}
	if err := draft.Set(f, value); err != nil {
		return err
	}
	c.state = withDraft(c.state, draft)
	return nil
}

// Cancel hides the form and drops the draft.
func (c *Controller) Cancel() {
	c.set(Hidden{})
}

// Submit sends the draft: a create call in Creating, a full replacement in
// Editing. On success the list is re-fetched and the form hidden; on
// failure the form stays open with the draft untouched.
func (c *Controller) Submit(ctx context.Context) error {
	var err error
	switch s := c.State().(type) {
	case Creating:
		_, err = c.catalog.CreateProduct(ctx, s.Draft)
		if err != nil {
			zctx.From(ctx).Error("Failed to create product", zap.Error(err))
			return errors.Wrap(err, "create product")
		}
	case Editing:
		err = c.catalog.UpdateProduct(ctx, s.ID, s.Draft)
		if err != nil {
			zctx.From(ctx).Error("Failed to update product", zap.Int64("id", s.ID), zap.Error(err))
			return errors.Wrapf(err, "update product %d", s.ID)
		}
	default:
		return ErrFormHidden
	}

	// Load logs its own failure; the mutation itself succeeded.
	_ = c.Load(ctx)
	c.set(Hidden{})
	return nil
}

// Delete removes product id after confirm agrees to DeleteConfirmMessage.
// A declined confirmation makes no call and returns nil. An edit form open
// on the deleted product is closed.
func (c *Controller) Delete(ctx context.Context, id int64, confirm Confirmer) error {
	if !confirm.Confirm(ctx, DeleteConfirmMessage) {
		return nil
	}
	if err := c.catalog.DeleteProduct(ctx, id); err != nil {
		zctx.From(ctx).Error("Failed to delete product", zap.Int64("id", id), zap.Error(err))
		return errors.Wrapf(err, "delete product %d", id)
	}

	_ = c.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.state.(Editing); ok && s.ID == id {
		c.state = Hidden{}
	}
	return nil
}

func (c *Controller) set(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

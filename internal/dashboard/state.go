package dashboard

import "github.com/xenking/budogu-admin/internal/domain/product"

// State is the form state of one dashboard session. It is always exactly
// one of Hidden, Creating or Editing.
type State interface {
	isState()
}

// Hidden means no form is shown.
type Hidden struct{}

// Creating holds the draft of a product that does not exist yet.
type Creating struct {
	Draft product.Input
}

// Editing holds a full replacement draft for the product with ID.
type Editing struct {
	ID    int64
	Draft product.Input
}

func (Hidden) isState()   {}
func (Creating) isState() {}
func (Editing) isState()  {}

// DraftOf returns the draft carried by s, if any.
func DraftOf(s State) (product.Input, bool) {
	switch s := s.(type) {
	case Creating:
		return s.Draft, true
	case Editing:
		return s.Draft, true
	default:
		return product.Input{}, false
	}
}

func withDraft(s State, draft product.Input) State {
	switch s := s.(type) {
	case Creating:
		return Creating{Draft: draft}
	case Editing:
		return Editing{ID: s.ID, Draft: draft}
	default:
		return s
	}
}

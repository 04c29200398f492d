package dashboard

import "context"

// DeleteConfirmMessage is the question asked before a product is deleted.
const DeleteConfirmMessage = "本当に削除しますか？"

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}

// Answer is a Confirmer whose answer is already known, e.g. from a submitted
// confirmation page.
type Answer bool

func (a Answer) Confirm(context.Context, string) bool {
	return bool(a)
}

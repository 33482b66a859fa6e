package responsive

import "context"

type contextKey struct{}

// NewContext attaches d to ctx so components rendered under an app root
// share one Dispatcher.
func NewContext(ctx context.Context, d *Dispatcher) context.Context {
	return context.WithValue(ctx, contextKey{}, d)
}

func FromContext(ctx context.Context) (*Dispatcher, bool) {
	d, ok := ctx.Value(contextKey{}).(*Dispatcher)
	return d, ok && d != nil
}

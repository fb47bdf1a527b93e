package shadergraph

import "github.com/Carmen-Shannon/oxy-matgraph/common"

// BuilderOption is a functional option for configuring a Builder via NewBuilder.
type BuilderOption func(*builder)

// WithLogger is an option builder that sets the logger Build reports to.
//
// Parameters:
//   - logger: the logger instance
//
// Returns:
//   - BuilderOption: a function that applies the logger option to a builder
func WithLogger(logger common.Logger) BuilderOption {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithLayout is an option builder that replaces DefaultLayout.
//
// Parameters:
//   - layout: the node coordinates to use
//
// Returns:
//   - BuilderOption: a function that applies the layout option to a builder
func WithLayout(layout Layout) BuilderOption {
	return func(b *builder) {
		b.layout = layout
	}
}

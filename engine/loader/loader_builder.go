package loader

import (
	"github.com/Carmen-Shannon/oxy-matgraph/common"
	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/texture"
)

// SessionBuilderOption is a functional option for configuring a Session via NewSession.
type SessionBuilderOption func(*session)

// WithLogger is an option builder that sets the logger diagnostics and progress are written to.
//
// Parameters:
//   - logger: the logger instance
//
// Returns:
//   - SessionBuilderOption: a function that applies the logger option to a session
func WithLogger(logger common.Logger) SessionBuilderOption {
	return func(s *session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithImageCache is an option builder that replaces the session's image cache.
// The cache must not be shared with another session.
//
// Parameters:
//   - cache: the image cache
//
// Returns:
//   - SessionBuilderOption: a function that applies the cache option to a session
func WithImageCache(cache texture.ImageCache) SessionBuilderOption {
	return func(s *session) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithWorkers is an option builder that sets how many workers MaterializeImages decodes with.
//
// Parameters:
//   - n: the worker count (values below 1 are treated as 1)
//
// Returns:
//   - SessionBuilderOption: a function that applies the worker option to a session
func WithWorkers(n int) SessionBuilderOption {
	return func(s *session) {
		s.workers = max(n, 1)
	}
}

// TextureResolverBuilderOption is a functional option for configuring a TextureResolver.
type TextureResolverBuilderOption func(*textureResolverImpl)

// WithResolverReporter is an option builder that sets where TEXTURE diagnostics are sent.
//
// Parameters:
//   - r: the reporter
//
// Returns:
//   - TextureResolverBuilderOption: a function that applies the reporter option to a resolver
func WithResolverReporter(r Reporter) TextureResolverBuilderOption {
	return func(tr *textureResolverImpl) {
		tr.reporter = r
	}
}

// MaterialParserBuilderOption is a functional option for configuring a MaterialParser.
type MaterialParserBuilderOption func(*materialParserImpl)

// WithParserReporter is an option builder that sets where material diagnostics are sent.
//
// Parameters:
//   - r: the reporter
//
// Returns:
//   - MaterialParserBuilderOption: a function that applies the reporter option to a parser
func WithParserReporter(r Reporter) MaterialParserBuilderOption {
	return func(p *materialParserImpl) {
		p.reporter = r
	}
}

package loader

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-matgraph/common"
	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/texture"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// defaultMaterialIndex keys the implicit default material in the material cache.
const defaultMaterialIndex = -1

// materialKey identifies one cached material variant.
type materialKey struct {
	index       int
	vertexColor bool
}

// materialResult is a memoized parse outcome. Failures are cached too so a broken material
// is diagnosed once.
type materialResult struct {
	model *material.Model
	err   error
}

// session is the implementation of the Session interface.
type session struct {
	mu sync.Mutex

	doc      *Document
	cache    texture.ImageCache
	resolver TextureResolver
	parser   MaterialParser
	logger   common.Logger
	workers  int

	materialCache map[materialKey]materialResult

	diagMu      sync.Mutex
	diagnostics []Diagnostic
}

// Session owns everything one import shares between its materials: the document, a single
// ImageCache and the resolver and parser bound to it. Materials are parsed on first request
// and cached; a material that fails to parse never affects the others.
type Session interface {
	// Document returns the document the session reads.
	//
	// Returns:
	//   - *Document: the document
	Document() *Document

	// ImageCache returns the session's image cache.
	//
	// Returns:
	//   - texture.ImageCache: the cache every binding of this session points into
	ImageCache() texture.ImageCache

	// Material resolves materials[index].
	//
	// Parameters:
	//   - index: the material index
	//
	// Returns:
	//   - *material.Model: the resolved model
	//   - error: ErrIndexOutOfRange for a bad index, or the parse error wrapping ErrMalformedMaterial
	Material(index int) (*material.Model, error)

	// DefaultMaterial returns the implicit material of primitives without a material index.
	//
	// Returns:
	//   - *material.Model: the default material
	DefaultMaterial() *material.Model

	// MaterialFor returns the material of a primitive. A nil index selects the default material.
	// When hasVertexColor is set the returned model is a separate variant with UseVertexColor
	// enabled, so primitives with and without COLOR_0 never share a model.
	//
	// Parameters:
	//   - index: the primitive's material index, or nil
	//   - hasVertexColor: whether the primitive carries a COLOR_0 attribute
	//
	// Returns:
	//   - *material.Model: the resolved model
	//   - error: the error of Material when the index does not resolve
	MaterialFor(index *int, hasVertexColor bool) (*material.Model, error)

	// Materials resolves every material of the document. Failing materials leave a nil slot
	// and contribute to the joined error; the rest are still returned.
	//
	// Returns:
	//   - []*material.Model: one entry per document material
	//   - error: the joined errors of failing materials, or nil
	Materials() ([]*material.Model, error)

	// Diagnostics returns the unrecognized-key diagnostics gathered so far, in report order.
	//
	// Returns:
	//   - []Diagnostic: a copy of the diagnostics
	Diagnostics() []Diagnostic

	// MaterializeImages runs dec on every cached image concurrently. Each image still decodes
	// at most once; images that were already materialized keep their first result.
	//
	// Parameters:
	//   - dec: the decoder, e.g. texture.FileDecoder
	//
	// Returns:
	//   - error: the joined decode errors, or nil
	MaterializeImages(dec texture.Decoder) error
}

var _ Session = &session{}

// NewSession creates an import session over doc with a fresh ImageCache.
//
// Parameters:
//   - doc: the parsed document
//   - options: variadic list of SessionBuilderOption functions
//
// Returns:
//   - Session: the session
//   - error: ErrNoDocument if doc is nil
func NewSession(doc *Document, options ...SessionBuilderOption) (Session, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}

	s := &session{
		doc:           doc,
		logger:        common.NopLogger{},
		workers:       runtime.NumCPU(),
		materialCache: make(map[materialKey]materialResult),
	}
	for _, option := range options {
		option(s)
	}
	if s.cache == nil {
		s.cache = texture.NewImageCache()
	}

	s.resolver = NewTextureResolver(doc, s.cache, WithResolverReporter(s.report))
	s.parser = NewMaterialParser(s.resolver, WithParserReporter(s.report))

	s.logger.Debugf("session %s: %d materials, %d textures, %d images",
		s.cache.ID(), len(doc.Materials), len(doc.Textures), len(doc.Images))
	return s, nil
}

func (s *session) Document() *Document {
	return s.doc
}

func (s *session) ImageCache() texture.ImageCache {
	return s.cache
}

func (s *session) Material(index int) (*material.Model, error) {
	if index < 0 || index >= len(s.doc.Materials) {
		return nil, fmt.Errorf("%w: material %d (document has %d)", ErrIndexOutOfRange, index, len(s.doc.Materials))
	}
	return s.lookup(materialKey{index: index})
}

func (s *session) DefaultMaterial() *material.Model {
	m, _ := s.lookup(materialKey{index: defaultMaterialIndex})
	return m
}

func (s *session) MaterialFor(index *int, hasVertexColor bool) (*material.Model, error) {
	key := materialKey{index: defaultMaterialIndex, vertexColor: hasVertexColor}
	if index != nil {
		if *index < 0 || *index >= len(s.doc.Materials) {
			return nil, fmt.Errorf("%w: material %d (document has %d)", ErrIndexOutOfRange, *index, len(s.doc.Materials))
		}
		key.index = *index
	}
	return s.lookup(key)
}

func (s *session) Materials() ([]*material.Model, error) {
	out := make([]*material.Model, len(s.doc.Materials))
	var errs []error
	for i := range s.doc.Materials {
		m, err := s.Material(i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[i] = m
	}
	return out, errors.Join(errs...)
}

func (s *session) Diagnostics() []Diagnostic {
	s.diagMu.Lock()
	defer s.diagMu.Unlock()
	return slices.Clone(s.diagnostics)
}

func (s *session) MaterializeImages(dec texture.Decoder) error {
	images := s.cache.Images()
	if len(images) == 0 {
		return nil
	}

	// The pool's own Wait blocks until workers idle out; a WaitGroup gives the barrier instead.
	pool := worker.NewDynamicWorkerPool(min(s.workers, len(images)), 256, 1*time.Second)
	defer pool.Stop()

	errs := make([]error, len(images))
	var wg sync.WaitGroup
	for i, img := range images {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: img,
			Do: func() (any, error) {
				defer wg.Done()
				handle, err := img.Materialize(dec)
				if err != nil {
					errs[i] = err
					s.logger.Warnf("%s: %v", img.Label(), err)
				}
				return handle, err
			},
		})
	}
	wg.Wait()

	s.logger.Debugf("session %s: materialized %d images", s.cache.ID(), len(images))
	return errors.Join(errs...)
}

// lookup returns the cached result for key, parsing on first use. Parsing happens under the
// session lock so each material is resolved and diagnosed exactly once.
func (s *session) lookup(key materialKey) (*material.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(key)
}

// lookupLocked is lookup without locking. Callers hold s.mu.
func (s *session) lookupLocked(key materialKey) (*material.Model, error) {
	if res, ok := s.materialCache[key]; ok {
		return res.model, res.err
	}

	var res materialResult
	switch {
	case key.vertexColor:
		base, err := s.lookupLocked(materialKey{index: key.index})
		if err != nil {
			res.err = err
			break
		}
		variant := *base
		variant.SetUseVertexColor(true)
		res.model = &variant
	case key.index == defaultMaterialIndex:
		res.model = s.parser.ParseDefault()
	default:
		res.model, res.err = s.parser.Parse(key.index, s.doc.Materials[key.index])
		if res.err != nil {
			s.logger.Warnf("%v", res.err)
		}
	}
	s.materialCache[key] = res
	return res.model, res.err
}

// report records a diagnostic and logs it at debug level.
func (s *session) report(d Diagnostic) {
	s.logger.Debugf("%s", d)

	s.diagMu.Lock()
	s.diagnostics = append(s.diagnostics, d)
	s.diagMu.Unlock()
}

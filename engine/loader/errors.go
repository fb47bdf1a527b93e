package loader

import "errors"

// Errors returned while resolving materials. Callers match them with errors.Is.
var (
	// ErrMalformedMaterial marks a material that violates the glTF material schema.
	// Other materials of the same document are unaffected.
	ErrMalformedMaterial = errors.New("malformed material")

	// ErrIndexOutOfRange marks a texture, image or material index that does not resolve
	// against the document arrays.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoDocument is returned when a session is created without a document.
	ErrNoDocument = errors.New("no document loaded")
)

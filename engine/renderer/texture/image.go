package texture

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-matgraph/common"
)

// ErrUnsupportedImageSource is returned by decoders that cannot read an image's source kind.
var ErrUnsupportedImageSource = errors.New("unsupported image source")

// ErrImageOutsideBaseDir is returned by FileDecoder for URIs that are absolute or leave its BaseDir.
var ErrImageOutsideBaseDir = errors.New("image uri outside base directory")

// Decoder is the hook the host supplies to turn an Image's source into a decoded resource.
// The engine never inspects the returned handle.
type Decoder interface {
	// Decode materializes the image.
	//
	// Parameters:
	//   - img: the image to decode
	//
	// Returns:
	//   - any: the opaque decoded handle
	//   - error: error if decoding fails
	Decode(img *Image) (any, error)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc func(img *Image) (any, error)

func (f DecoderFunc) Decode(img *Image) (any, error) {
	return f(img)
}

// Image is one glTF image source shared by every texture that references it.
// Images are owned by an ImageCache; bindings only point at them.
type Image struct {
	// SourceID is the index of the image in the document's images array.
	SourceID int

	// Name is the optional image name from the document.
	Name string

	// URI is the image URI (data: URI or relative file path), empty for buffer-view images.
	URI string

	// MimeType is the declared MIME type, required by glTF for buffer-view images.
	MimeType string

	// BufferView is the buffer view holding the encoded image, if any.
	BufferView *int

	label string

	once         sync.Once
	materialized atomic.Bool
	handle       any
	err          error
}

// Label returns a session-unique label for the image, suitable for naming host resources.
func (i *Image) Label() string {
	return common.Coalesce(i.label, i.Name, fmt.Sprintf("Image_%d", i.SourceID))
}

// Materialize decodes the image through dec the first time it is called.
// Later calls return the first result without invoking any decoder again,
// so an image is decoded at most once per session.
//
// Parameters:
//   - dec: the decoder to use if the image has not been materialized yet
//
// Returns:
//   - any: the decoded handle
//   - error: the decode error, if the first attempt failed
func (i *Image) Materialize(dec Decoder) (any, error) {
	i.once.Do(func() {
		if dec == nil {
			i.err = fmt.Errorf("image %d: no decoder", i.SourceID)
		} else {
			i.handle, i.err = dec.Decode(i)
			if i.err != nil {
				i.err = fmt.Errorf("image %d: %w", i.SourceID, i.err)
			}
		}
		i.materialized.Store(true)
	})
	return i.handle, i.err
}

// Handle returns the decoded handle and whether materialization has completed.
func (i *Image) Handle() (any, bool) {
	if !i.materialized.Load() {
		return nil, false
	}
	return i.handle, true
}

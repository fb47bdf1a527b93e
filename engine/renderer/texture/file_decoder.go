package texture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-matgraph/common"
)

// FileDecoder is a Decoder for images stored as data URIs or as files next to the glTF document.
// It produces *common.TextureStagingData handles. Images embedded in buffer views are
// rejected with ErrUnsupportedImageSource; hosts that load buffers supply their own Decoder.
type FileDecoder struct {
	// BaseDir is the directory relative URIs are resolved against.
	BaseDir string
}

var _ Decoder = FileDecoder{}

func (d FileDecoder) Decode(img *Image) (any, error) {
	switch {
	case img.BufferView != nil:
		return nil, fmt.Errorf("%w: buffer view %d", ErrUnsupportedImageSource, *img.BufferView)
	case strings.HasPrefix(img.URI, "data:"):
		data, _, err := decodeDataURI(img.URI)
		if err != nil {
			return nil, err
		}
		return common.DecodeRGBA(bytes.NewReader(data))
	case img.URI != "":
		path, err := d.resolve(img.URI)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
		}
		defer f.Close()
		return common.DecodeRGBA(f)
	default:
		return nil, fmt.Errorf("%w: image has neither uri nor buffer view", ErrUnsupportedImageSource)
	}
}

// resolve turns a relative, possibly percent-encoded URI into a file path under BaseDir.
// Absolute paths and paths that climb out of BaseDir are rejected.
func (d FileDecoder) resolve(uri string) (string, error) {
	unescaped, err := url.PathUnescape(uri)
	if err != nil {
		return "", fmt.Errorf("invalid image uri %q: %w", uri, err)
	}
	rel := filepath.FromSlash(unescaped)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrImageOutsideBaseDir, uri)
	}
	return filepath.Join(d.BaseDir, rel), nil
}

// decodeDataURI decodes a base64 data URI into raw bytes and extracts the MIME type.
func decodeDataURI(uri string) ([]byte, string, error) {
	// Format: data:[<mediatype>][;base64],<data>
	commaIdx := strings.Index(uri, ",")
	if commaIdx < 0 {
		return nil, "", fmt.Errorf("malformed data URI: no comma found")
	}

	header := uri[len("data:"):commaIdx]
	encoded := uri[commaIdx+1:]

	mimeType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return nil, "", fmt.Errorf("%w: data URI is not base64 encoded", ErrUnsupportedImageSource)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64: %w", err)
	}

	return data, mimeType, nil
}

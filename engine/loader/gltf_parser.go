package loader

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Common errors returned by the parser
var (
	errInvalidGLTFVersion = errors.New("invalid glTF version: must be 2.0")
	errInvalidGLBMagic    = errors.New("invalid GLB magic number")
	errInvalidGLBVersion  = errors.New("invalid GLB version: must be 2")
	errTruncatedGLB       = errors.New("truncated GLB data")
	errMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
)

// GLB magic number and chunk type constants
const (
	gltfGLBMagic     = 0x46546C67 // "glTF" in little-endian ASCII
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON" in little-endian ASCII
)

// gltfGLBHeader is the header of a GLB file (12 bytes).
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
type gltfGLBHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// gltfGLBChunkHeader is the header of a GLB chunk (8 bytes).
type gltfGLBChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32
}

// gltfEnvelope adds the asset block to a Document for version checking.
type gltfEnvelope struct {
	Asset struct {
		Version string `json:"version"`
	} `json:"asset"`
	Document
}

// ParseDocument reads a glTF JSON or GLB stream and keeps the arrays materials can reference.
// The format is detected from the GLB magic number. The GLB binary chunk is not retained.
//
// Parameters:
//   - r: the glTF or GLB data
//
// Returns:
//   - *Document: the parsed document
//   - error: error if reading or decoding fails
func ParseDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	if len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == gltfGLBMagic {
		data, err = glbJSONChunk(data)
		if err != nil {
			return nil, err
		}
	}

	var env gltfEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(env.Asset.Version, "2.") {
		return nil, errInvalidGLTFVersion
	}

	doc := env.Document
	return &doc, nil
}

// ParseDocumentFile opens path and parses it with ParseDocument.
//
// Parameters:
//   - path: the .gltf or .glb file
//
// Returns:
//   - *Document: the parsed document
//   - error: error if the file cannot be read or decoded
func ParseDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	doc, err := ParseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// glbJSONChunk extracts the JSON chunk of a GLB container.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
func glbJSONChunk(data []byte) ([]byte, error) {
	if len(data) < 12 {
		return nil, errors.New("GLB file too small")
	}

	r := bytes.NewReader(data)

	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read GLB header: %w", err)
	}
	if header.Magic != gltfGLBMagic {
		return nil, errInvalidGLBMagic
	}
	if header.Version != gltfGLBVersion {
		return nil, errInvalidGLBVersion
	}
	if int64(header.Length) > int64(len(data)) {
		return nil, fmt.Errorf("%w: declared length %d, have %d bytes", errTruncatedGLB, header.Length, len(data))
	}

	for {
		var chunkHeader gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunkHeader); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read chunk header: %w", err)
		}

		if int64(chunkHeader.ChunkLength) > int64(r.Len()) {
			return nil, fmt.Errorf("%w: chunk length %d exceeds remaining %d bytes", errTruncatedGLB, chunkHeader.ChunkLength, r.Len())
		}

		chunkData := make([]byte, chunkHeader.ChunkLength)
		if _, err := io.ReadFull(r, chunkData); err != nil {
			return nil, fmt.Errorf("failed to read chunk data: %w", err)
		}

		if chunkHeader.ChunkType == gltfGLBChunkJSON {
			return chunkData, nil
		}
	}

	return nil, errMissingJSONChunk
}

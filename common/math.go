package common

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// White is the neutral multiplicative color factor.
var White = mgl32.Vec4{1, 1, 1, 1}

// ColorFromSlice converts a glTF color-factor array into RGBA.
// Three components are widened with alpha = 1, four are used verbatim.
//
// Parameters:
//   - values: the decoded JSON array
//
// Returns:
//   - mgl32.Vec4: the RGBA color
//   - error: error if the array has any other length
func ColorFromSlice(values []float32) (mgl32.Vec4, error) {
	switch len(values) {
	case 3:
		return mgl32.Vec3{values[0], values[1], values[2]}.Vec4(1), nil
	case 4:
		return mgl32.Vec4{values[0], values[1], values[2], values[3]}, nil
	default:
		return mgl32.Vec4{}, fmt.Errorf("color must have 3 or 4 components, got %d", len(values))
	}
}

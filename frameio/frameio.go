package frameio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/pixelart"
)

// Read loads a frame, picking the codec from the file extension.
func Read(path string) (*pixelart.Frame, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".exr":
		return ReadEXR(path)
	case ".png":
		return ReadPNG(path)
	default:
		return nil, fmt.Errorf("frameio: unsupported extension %q", ext)
	}
}

// Write stores a frame, picking the codec from the file extension.
// scale only applies to PNG output.
func Write(path string, f *pixelart.Frame, scale int) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".exr":
		return WriteEXR(path, f)
	case ".png":
		return WritePNG(path, f, scale)
	default:
		return fmt.Errorf("frameio: unsupported extension %q", ext)
	}
}

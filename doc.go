// Package pixelart turns lit 3D renders into stylized pixel art.
//
// # Overview
//
// Each fragment runs through three deterministic stages after lighting:
//
//  1. Toon quantization snaps luminance onto a fixed number of bands.
//  2. Palette matching pulls the color toward its nearest entry in a
//     limited palette, measured in CIELAB.
//  3. Ordered dithering swaps in the second-nearest palette color near
//     palette boundaries, using a 4x4 Bayer pattern.
//
// A two-layer compositor then places a low-resolution stylized layer over
// a full-resolution realistic layer using reversed-Z depth.
//
// # Quick Start
//
//	p := pixelart.DefaultParams()
//	r := pixelart.NewRenderer()
//	defer r.Close()
//
//	styl, err := r.StylizeFrame(ctx, lit, p, pixelart.TonemapClamp, 0)
//	if err != nil {
//		return err
//	}
//	out, err := r.Composite(ctx, full, styl, pixelart.DefaultCompositorSettings())
//
// # Per-Fragment API
//
// Stylize is a pure function of a Params value, a Fragment and a Lighting
// implementation. It never fails and may be called from any goroutine.
// Params.DebugStage stops the pipeline early for inspection.
//
// # Color Spaces
//
// All colors are linear RGB. Palette distances use CIELAB with a D65 white
// point. The frameio sub-package converts to and from 8-bit sRGB.
//
// # Depth Convention
//
// Depth is reversed-Z: 1 is the near plane and 0 the far plane, so larger
// values are closer to the camera.
//
// # Sub-packages
//
//   - config: TOML configuration files
//   - frameio: OpenEXR and PNG frame I/O
//   - gpu: compute-shader port of the stylize and composite kernels
package pixelart

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

// Package convert is the color-correction step between capture and GPU
// upload. The actual red/blue swap runs in the renderer's fragment shader,
// so on the CPU side the step degenerates to a checked reinterpretation of
// the captured bytes.
package convert

import (
	"errors"
	"fmt"

	"screensplit/internal/capture"
)

const bytesPerPixel = 4

// ErrFrameSize means the captured byte buffer does not match the frame's
// stated dimensions.
var ErrFrameSize = errors.New("frame byte length does not match geometry")

// Pixels validates the frame's pixel buffer against its dimensions and
// returns it ready for texture upload, still in BGRA order.
func Pixels(f *capture.Frame) ([]byte, error) {
	want := f.Width * f.Height * bytesPerPixel
	if len(f.Pix) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%d",
			ErrFrameSize, len(f.Pix), want, f.Width, f.Height)
	}
	return f.Pix, nil
}

// SwapRB exchanges the red and blue channels of a 4-byte-per-pixel buffer in
// place. It is the CPU reference of the shader swizzle; the render path does
// not call it because a per-pixel swap of a full screen at interactive rates
// is measurably slower than doing it once per pixel on the GPU.
func SwapRB(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

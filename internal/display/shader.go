package display

import "github.com/hajimehoshi/ebiten/v2"

// The X server delivers frames in BGRA byte order while the texture is
// sampled as RGBA: red and blue arrive swapped. The swap runs in the
// fragment shader because reordering a full screen of pixels on the CPU at
// interactive rates is measurably slower than a per-pixel swizzle on the
// GPU. Row order needs no correction here; capture rows and texture rows are
// both stored top to bottom.
var swizzleSrc = []byte(`
//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	tex := imageSrc0UnsafeAt(srcPos)
	return vec4(tex.b, tex.g, tex.r, 1)
}
`)

// newSwizzleShader compiles the channel-swap shader. Compiled once at
// startup; a failure here is fatal.
func newSwizzleShader() (*ebiten.Shader, error) {
	return ebiten.NewShader(swizzleSrc)
}

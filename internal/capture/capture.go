package capture

// Frame is one captured screen image in the X server's native BGRA byte
// order, rows top to bottom. A frame lives for a single tick of the mirror
// loop and is never retained across ticks.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// Geometry describes a monitor's region in root window coordinates. It is
// read once at startup and fixed for the whole session; a monitor that
// changes resolution mid-run is not supported.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

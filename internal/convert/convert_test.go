package convert

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"screensplit/internal/capture"
)

func TestPixelsAcceptsExactBuffer(t *testing.T) {
	f := &capture.Frame{Width: 3, Height: 2, Pix: make([]byte, 3*2*4)}
	pix, err := Pixels(f)
	if err != nil {
		t.Fatalf("Pixels failed: %v", err)
	}
	if len(pix) != len(f.Pix) {
		t.Errorf("expected %d bytes, got %d", len(f.Pix), len(pix))
	}
}

func TestPixelsRejectsMismatchedBuffer(t *testing.T) {
	for _, n := range []int{0, 23, 25} {
		f := &capture.Frame{Width: 3, Height: 2, Pix: make([]byte, n)}
		if _, err := Pixels(f); !errors.Is(err, ErrFrameSize) {
			t.Errorf("%d bytes: expected ErrFrameSize, got %v", n, err)
		}
	}
}

func TestSwapRBSwapsChannels(t *testing.T) {
	pix := []byte{10, 20, 30, 255, 1, 2, 3, 4}
	SwapRB(pix)
	want := []byte{30, 20, 10, 255, 3, 2, 1, 4}
	if !bytes.Equal(pix, want) {
		t.Errorf("got %v, want %v", pix, want)
	}
}

// Swapping the channel order twice must restore the original byte layout.
func TestSwapRBRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pix := make([]byte, 64*64*4)
	rng.Read(pix)
	orig := bytes.Clone(pix)

	SwapRB(pix)
	if bytes.Equal(pix, orig) {
		t.Fatal("single swap left the buffer unchanged")
	}
	SwapRB(pix)
	if !bytes.Equal(pix, orig) {
		t.Error("double swap did not restore the original layout")
	}
}

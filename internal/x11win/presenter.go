// Package x11win hides the mirror window from the user without hiding it
// from window-sharing applications.
//
// Window managers refuse to park managed windows outside the visible desktop
// on the assumption that such a request is a mistake, so the window is
// switched to override-redirect, taking it away from window manager control
// entirely. That also means the window manager never sets the window's
// WM_STATE property, and window pickers (Chrome's screen-share dialog among
// them) drop windows without WM_STATE from their selection list. The
// property is therefore forged by hand with a raw ChangeProperty request and
// flushed synchronously.
//
// This only exists for X11. On other display systems Connect fails loudly;
// skipping the step silently would leave a window nobody can select, which
// defeats the whole tool.
package x11win

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// wmStateNormal is the NormalState value of the ICCCM WM_STATE property.
const wmStateNormal = 1

// ErrWindowNotFound means the mirror window has not shown up in the X window
// tree yet. Callers may retry on a later tick; every other failure is final.
var ErrWindowNotFound = errors.New("window not found")

// Presenter performs the off-screen placement protocol over its own X
// connection, separate from the one the GPU surface rides on.
type Presenter struct {
	conn *xgb.Conn
	root xproto.Window
}

// Connect opens the X connection used for window surgery.
func Connect() (*Presenter, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11 window presentation unavailable: %w", err)
	}
	return &Presenter{
		conn: conn,
		root: xproto.Setup(conn).DefaultScreen(conn).Root,
	}, nil
}

// Close releases the X connection.
func (p *Presenter) Close() {
	p.conn.Close()
}

// Conceal finds the window carrying the given title, moves its top-left
// corner to (-width, -height) so no part of it intersects any monitor, and
// forges WM_STATE so the window stays enumerable. The change is flushed to
// the server before returning.
func (p *Presenter) Conceal(title string, width, height int) error {
	wid, err := p.findWindow(title)
	if err != nil {
		return err
	}

	// The window manager silently corrects off-screen positions of managed
	// windows, so unmanage the window first. The unmap/map cycle makes the
	// window manager release its grip on the existing window.
	if err := xproto.UnmapWindowChecked(p.conn, wid).Check(); err != nil {
		return fmt.Errorf("unmap window: %w", err)
	}
	if err := xproto.ChangeWindowAttributesChecked(p.conn, wid,
		xproto.CwOverrideRedirect, []uint32{1}).Check(); err != nil {
		return fmt.Errorf("set override-redirect: %w", err)
	}
	if err := xproto.ConfigureWindowChecked(p.conn, wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		offscreenPosition(width, height)).Check(); err != nil {
		return fmt.Errorf("move window off screen: %w", err)
	}
	if err := xproto.MapWindowChecked(p.conn, wid).Check(); err != nil {
		return fmt.Errorf("remap window: %w", err)
	}

	if err := p.setWMState(wid); err != nil {
		return err
	}
	p.conn.Sync()
	return nil
}

// setWMState writes WM_STATE = [NormalState, no icon window] the way a
// window manager would: the property's type is the WM_STATE atom itself,
// format 32, two elements.
func (p *Presenter) setWMState(wid xproto.Window) error {
	atom, err := p.internAtom("WM_STATE")
	if err != nil {
		return err
	}
	if err := xproto.ChangePropertyChecked(p.conn, xproto.PropModeReplace,
		wid, atom, atom, 32, 2, wmStatePayload()).Check(); err != nil {
		return fmt.Errorf("set WM_STATE: %w", err)
	}
	return nil
}

// wmStatePayload encodes the two 32-bit property values in connection byte
// order.
func wmStatePayload() []byte {
	buf := make([]byte, 8)
	xgb.Put32(buf, wmStateNormal)
	xgb.Put32(buf[4:], 0)
	return buf
}

// offscreenPosition encodes (-width, -height) as a ConfigureWindow value
// list. Positions are signed 16-bit values carried in the low half of each
// 32-bit list entry.
func offscreenPosition(width, height int) []uint32 {
	return []uint32{
		uint32(uint16(int16(-width))),
		uint32(uint16(int16(-height))),
	}
}

// findWindow walks the window tree breadth first looking for a client window
// whose title matches exactly. The GPU surface library names only the one
// window it created, so an exact match is unambiguous.
func (p *Presenter) findWindow(title string) (xproto.Window, error) {
	utf8Title, err := p.internAtom("_NET_WM_NAME")
	if err != nil {
		return 0, err
	}

	queue := []xproto.Window{p.root}
	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		if w != p.root {
			if name, ok := p.windowName(w, utf8Title); ok && name == title {
				return w, nil
			}
		}
		tree, err := xproto.QueryTree(p.conn, w).Reply()
		if err != nil {
			continue // window may have vanished mid-walk
		}
		queue = append(queue, tree.Children...)
	}
	return 0, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
}

// windowName reads _NET_WM_NAME, falling back to the legacy WM_NAME.
func (p *Presenter) windowName(w xproto.Window, utf8Title xproto.Atom) (string, bool) {
	for _, prop := range []xproto.Atom{utf8Title, xproto.AtomWmName} {
		reply, err := xproto.GetProperty(p.conn, false, w, prop,
			xproto.GetPropertyTypeAny, 0, 64).Reply()
		if err != nil || reply == nil || len(reply.Value) == 0 {
			continue
		}
		return string(reply.Value), true
	}
	return "", false
}

func (p *Presenter) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(p.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

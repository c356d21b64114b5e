package capture

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
)

// ErrMonitorOutOfRange means the requested monitor index does not name an
// active Xinerama screen.
var ErrMonitorOutOfRange = errors.New("monitor index out of range")

// Capturer reads a single monitor's framebuffer over the X11 protocol.
type Capturer struct {
	conn *xgb.Conn
	root xproto.Drawable
	geo  Geometry
}

// Open connects to the X server and binds a capturer to the given monitor
// index.
func Open(monitor int) (*Capturer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	screens, err := queryScreens(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	geo, err := pickMonitor(screens, monitor)
	if err != nil {
		conn.Close()
		return nil, err
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	return &Capturer{conn: conn, root: xproto.Drawable(root), geo: geo}, nil
}

// Geometry returns the monitor region, read once when the capturer was
// opened.
func (c *Capturer) Geometry() Geometry {
	return c.geo
}

// Capture grabs the monitor's current contents. The returned pixel data is
// in the server's BGRA order; no channel correction happens here.
func (c *Capturer) Capture() (*Frame, error) {
	reply, err := xproto.GetImage(c.conn, xproto.ImageFormatZPixmap, c.root,
		int16(c.geo.X), int16(c.geo.Y),
		uint16(c.geo.Width), uint16(c.geo.Height), 0xffffffff).Reply()
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	return &Frame{Width: c.geo.Width, Height: c.geo.Height, Pix: reply.Data}, nil
}

// Close releases the X connection.
func (c *Capturer) Close() {
	c.conn.Close()
}

// Monitors returns the geometry of every active monitor, in index order.
func Monitors() ([]Geometry, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()
	screens, err := queryScreens(conn)
	if err != nil {
		return nil, err
	}
	geos := make([]Geometry, len(screens))
	for i, si := range screens {
		geos[i] = toGeometry(si)
	}
	return geos, nil
}

func queryScreens(conn *xgb.Conn) ([]xinerama.ScreenInfo, error) {
	if err := xinerama.Init(conn); err != nil {
		return nil, fmt.Errorf("xinerama init: %w", err)
	}
	reply, err := xinerama.QueryScreens(conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("query screens: %w", err)
	}
	return reply.ScreenInfo, nil
}

func pickMonitor(screens []xinerama.ScreenInfo, monitor int) (Geometry, error) {
	if monitor < 0 || monitor >= len(screens) {
		return Geometry{}, fmt.Errorf("%w: %d (have %d monitors)",
			ErrMonitorOutOfRange, monitor, len(screens))
	}
	return toGeometry(screens[monitor]), nil
}

func toGeometry(si xinerama.ScreenInfo) Geometry {
	return Geometry{
		X:      int(si.XOrg),
		Y:      int(si.YOrg),
		Width:  int(si.Width),
		Height: int(si.Height),
	}
}

// Package display lists the attached monitors in a stable, user-facing order.
package display

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/1broseidon/frameless/internal/platform"
)

// Info describes one active monitor in virtual-desktop coordinates.
type Info struct {
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Primary bool   `json:"primary"`
}

// Bounds returns the monitor rectangle.
func (d Info) Bounds() platform.Rect {
	return platform.Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height}
}

// Label is the one-line description shown to users.
func (d Info) Label() string {
	label := fmt.Sprintf("%s - %dx%d", d.Name, d.Width, d.Height)
	if d.Primary {
		label += " (Primary)"
	}
	return label
}

// MonitorSource is the part of platform.Backend this package needs.
type MonitorSource interface {
	Monitors() ([]platform.Monitor, error)
}

// Enumerate returns every active monitor, primary first and the rest by
// name. Names follow discovery order ("Display 1", "Display 2", ...). A
// failed query yields an empty list.
func Enumerate(src MonitorSource, logger *slog.Logger) []Info {
	monitors, err := src.Monitors()
	if err != nil {
		if logger != nil {
			logger.Warn("display enumeration failed", "error", err)
		}
		return []Info{}
	}

	displays := make([]Info, 0, len(monitors))
	for i, m := range monitors {
		displays = append(displays, Info{
			Name:    fmt.Sprintf("Display %d", i+1),
			X:       m.Bounds.X,
			Y:       m.Bounds.Y,
			Width:   m.Bounds.Width,
			Height:  m.Bounds.Height,
			Primary: m.Primary,
		})
	}

	Sort(displays)
	return displays
}

// Sort orders displays primary first, then by name. Names compare as
// strings, so "Display 10" sorts before "Display 2".
func Sort(displays []Info) {
	sort.SliceStable(displays, func(i, j int) bool {
		if displays[i].Primary != displays[j].Primary {
			return displays[i].Primary
		}
		return displays[i].Name < displays[j].Name
	})
}

// At returns the display at index, or nil when index is out of range.
func At(displays []Info, index int) *Info {
	if index < 0 || index >= len(displays) {
		return nil
	}
	d := displays[index]
	return &d
}

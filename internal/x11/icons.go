package x11

import (
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"golang.org/x/image/draw"
)

// WindowIcon returns the window's _NET_WM_ICON scaled to size x size, or
// nil when the window publishes no icon.
func (c *Connection) WindowIcon(windowID xproto.Window, size int) (*image.RGBA, error) {
	icons, err := ewmh.WmIconGet(c.XUtil, windowID)
	if err != nil || len(icons) == 0 {
		return nil, nil
	}

	best := pickIcon(icons, size)
	src := iconToNRGBA(best)
	if src == nil {
		return nil, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}

// pickIcon prefers the smallest icon at least size pixels wide and falls
// back to the largest one available.
func pickIcon(icons []ewmh.WmIcon, size int) ewmh.WmIcon {
	best := -1
	for i, icon := range icons {
		w := int(icon.Width)
		if w < size {
			continue
		}
		if best < 0 || w < int(icons[best].Width) {
			best = i
		}
	}
	if best >= 0 {
		return icons[best]
	}

	largest := 0
	for i, icon := range icons {
		if icon.Width > icons[largest].Width {
			largest = i
		}
	}
	return icons[largest]
}

// iconToNRGBA converts packed ARGB cardinals into an image.
func iconToNRGBA(icon ewmh.WmIcon) *image.NRGBA {
	w, h := int(icon.Width), int(icon.Height)
	if w <= 0 || h <= 0 || len(icon.Data) < w*h {
		return nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		argb := uint32(icon.Data[i])
		off := i * 4
		img.Pix[off+0] = uint8(argb >> 16)
		img.Pix[off+1] = uint8(argb >> 8)
		img.Pix[off+2] = uint8(argb)
		img.Pix[off+3] = uint8(argb >> 24)
	}
	return img
}

//go:build windows

package platform

import (
	"errors"
	"fmt"
	"image"
	"unsafe"
)

// gdiScope owns the GDI objects used to rasterise one icon. Close releases
// whatever was acquired, in reverse order of acquisition, and is safe to
// call on a partially initialised scope.
type gdiScope struct {
	screenDC uintptr
	memDC    uintptr
	bitmap   uintptr
	previous uintptr
}

func newGDIScope(size int) (*gdiScope, error) {
	s := &gdiScope{}

	s.screenDC, _, _ = procGetDC.Call(0)
	if s.screenDC == 0 {
		return nil, errors.New("GetDC failed")
	}

	s.memDC, _, _ = procCreateCompatibleDC.Call(s.screenDC)
	if s.memDC == 0 {
		s.Close()
		return nil, errors.New("CreateCompatibleDC failed")
	}

	s.bitmap, _, _ = procCreateCompatibleBitmap.Call(s.screenDC, uintptr(size), uintptr(size))
	if s.bitmap == 0 {
		s.Close()
		return nil, errors.New("CreateCompatibleBitmap failed")
	}

	s.previous, _, _ = procSelectObject.Call(s.memDC, s.bitmap)
	if s.previous == 0 {
		s.Close()
		return nil, errors.New("SelectObject failed")
	}
	return s, nil
}

func (s *gdiScope) Close() {
	if s.previous != 0 {
		procSelectObject.Call(s.memDC, s.previous)
		s.previous = 0
	}
	if s.bitmap != 0 {
		procDeleteObject.Call(s.bitmap)
		s.bitmap = 0
	}
	if s.memDC != 0 {
		procDeleteDC.Call(s.memDC)
		s.memDC = 0
	}
	if s.screenDC != 0 {
		procReleaseDC.Call(0, s.screenDC)
		s.screenDC = 0
	}
}

// smallIconHandle asks the window for its small icon and falls back to
// the class icons. Zero means the window has none.
func smallIconHandle(id WindowID) uintptr {
	for _, which := range []uintptr{iconSmall, iconSmall2} {
		var result uintptr
		ok, _, _ := procSendMessageTimeoutW.Call(
			uintptr(id), wmGetIcon, which, 0,
			smtoAbortIfHung, smtoTimeoutMilli,
			uintptr(unsafe.Pointer(&result)),
		)
		if ok != 0 && result != 0 {
			return result
		}
	}

	getClassLong := procGetClassLongPtrW
	if getClassLong.Find() != nil {
		getClassLong = procGetClassLongW
	}
	for _, index := range []uintptr{gclpHIconSm, gclpHIcon} {
		if h, _, _ := getClassLong.Call(uintptr(id), index); h != 0 {
			return h
		}
	}
	return 0
}

// renderIcon draws the icon into a top-down 32bpp DIB and converts the
// BGRA pixels to RGBA.
func renderIcon(icon uintptr) (*image.RGBA, error) {
	scope, err := newGDIScope(IconSize)
	if err != nil {
		return nil, err
	}
	defer scope.Close()

	ok, _, _ := procDrawIconEx.Call(scope.memDC, 0, 0, icon, IconSize, IconSize, 0, 0, diNormal)
	if ok == 0 {
		return nil, errors.New("DrawIconEx failed")
	}

	info := bitmapInfo{
		Header: bitmapInfoHeader{
			Width:       IconSize,
			Height:      -IconSize,
			Planes:      1,
			BitCount:    32,
			Compression: biRGB,
		},
	}
	info.Header.Size = uint32(unsafe.Sizeof(info.Header))

	img := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	lines, _, _ := procGetDIBits.Call(
		scope.memDC,
		scope.bitmap,
		0,
		IconSize,
		uintptr(unsafe.Pointer(&img.Pix[0])),
		uintptr(unsafe.Pointer(&info)),
		dibRGBColors,
	)
	if lines == 0 {
		return nil, fmt.Errorf("GetDIBits copied no scanlines")
	}

	swapRedBlue(img.Pix)
	return img, nil
}

func swapRedBlue(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

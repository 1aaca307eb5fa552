//go:build windows

package platform

import (
	"golang.org/x/sys/windows"
)

var (
	modUser32   = windows.NewLazySystemDLL("user32.dll")
	modGdi32    = windows.NewLazySystemDLL("gdi32.dll")
	modKernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetWindowLongW      = modUser32.NewProc("GetWindowLongW")
	procSetWindowLongW      = modUser32.NewProc("SetWindowLongW")
	procSetWindowPos        = modUser32.NewProc("SetWindowPos")
	procGetSystemMetrics    = modUser32.NewProc("GetSystemMetrics")
	procEnumDisplayMonitors = modUser32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = modUser32.NewProc("GetMonitorInfoW")
	procSendMessageTimeoutW = modUser32.NewProc("SendMessageTimeoutW")
	procGetClassLongPtrW    = modUser32.NewProc("GetClassLongPtrW")
	procGetClassLongW       = modUser32.NewProc("GetClassLongW")
	procGetDC               = modUser32.NewProc("GetDC")
	procReleaseDC           = modUser32.NewProc("ReleaseDC")
	procDrawIconEx          = modUser32.NewProc("DrawIconEx")

	procCreateCompatibleDC     = modGdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = modGdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = modGdi32.NewProc("SelectObject")
	procDeleteObject           = modGdi32.NewProc("DeleteObject")
	procDeleteDC               = modGdi32.NewProc("DeleteDC")
	procGetDIBits              = modGdi32.NewProc("GetDIBits")

	procSetLastError = modKernel32.NewProc("SetLastError")
)

const (
	gwlStyle = ^uintptr(15) // GWL_STYLE (-16)

	swpNoSize          = 0x0001
	swpNoMove          = 0x0002
	swpNoZOrder        = 0x0004
	swpNoActivate      = 0x0010
	swpFrameChanged    = 0x0020
	hwndTop            = 0
	smCXScreen         = 0
	smCYScreen         = 1
	monitorInfoPrimary = 0x00000001

	wmGetIcon        = 0x007F
	iconSmall        = 0
	iconSmall2       = 2
	gclpHIcon        = ^uintptr(13) // GCLP_HICON (-14)
	gclpHIconSm      = ^uintptr(33) // GCLP_HICONSM (-34)
	smtoAbortIfHung  = 0x0002
	smtoTimeoutMilli = 100

	diNormal     = 0x0003
	dibRGBColors = 0
	biRGB        = 0
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfo struct {
	Size    uint32
	Monitor rect
	Work    rect
	Flags   uint32
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

// callErr normalises the error returned by LazyProc.Call, which is never nil.
func callErr(err error) error {
	if errno, ok := err.(windows.Errno); ok && errno == 0 {
		return nil
	}
	return err
}

func clearLastError() {
	procSetLastError.Call(0)
}

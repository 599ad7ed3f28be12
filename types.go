package leanimg

import (
	"fmt"
	"unicode/utf16"
)

const (
	// format32bppARGB tags 32-bit, 4-channel, top-down pixel data.
	format32bppARGB = 0x0026200a

	lockModeRead         = 0x0001
	lockModeWrite        = 0x0002
	lockModeUserInputBuf = 0x0004

	// bufferAlign rounds pixel buffer allocations so vector loops can
	// overrun the logical end of a row by up to bufferAlign-1 bytes.
	bufferAlign = 64

	statusOK = 0
)

// bitmapData mirrors the subsystem's BitmapData struct. It is passed by
// address into lock-bits, which decodes through scan0, and back into
// unlock-bits unchanged.
type bitmapData struct {
	width    uint32
	height   uint32
	stride   int32
	format   uint32
	scan0    uintptr
	reserved uintptr
}

// rect mirrors the subsystem's integer rectangle.
type rect struct {
	x, y, w, h int32
}

// startupInput mirrors the subsystem's startup configuration struct.
type startupInput struct {
	version                  uint32
	debugEventCallback       uintptr
	suppressBackgroundThread uint32
	suppressExternalCodecs   uint32
}

// utf16Path encodes path as a NUL-terminated UTF-16 string for the
// subsystem's file APIs.
func utf16Path(path string) (*uint16, error) {
	for _, r := range path {
		if r == 0 {
			return nil, fmt.Errorf("%w: path contains NUL", ErrDecode)
		}
	}
	buf := utf16.Encode([]rune(path + "\x00"))
	return &buf[0], nil
}

// Package leanimg loads raster images into directly addressable pixel
// buffers using the platform imaging subsystem (GDI+ on Windows, Mono
// libgdiplus elsewhere), resolved and bound entirely at runtime.
//
// Pixels are 32-bit ARGB (little-endian BGRA byte order), top-down, with a
// stride of exactly width*4 bytes. Buffer allocations are rounded up to a
// multiple of 64 bytes so wide vector loads may overrun a row end without
// touching unmapped memory.
//
// The package is not safe for concurrent use; callers serialize Load and
// Close.
package leanimg

import "errors"

var (
	// ErrUnsupported means no imaging subsystem host exists for this platform.
	ErrUnsupported = errors.New("leanimg: unsupported platform")

	// ErrBind means module loading, symbol resolution, or subsystem
	// startup failed.
	ErrBind = errors.New("leanimg: native binding failed")

	// ErrDecode means the file could not be opened or decoded.
	ErrDecode = errors.New("leanimg: decode failed")

	// ErrMeasure means the decoded image did not report its dimensions.
	ErrMeasure = errors.New("leanimg: measurement failed")

	// ErrAlloc means the pixel buffer allocation failed.
	ErrAlloc = errors.New("leanimg: buffer allocation failed")

	// ErrLock means the subsystem rejected the buffer/format combination.
	ErrLock = errors.New("leanimg: lock failed")
)

package leanimg

import (
	"fmt"
	"unsafe"
)

// Image is a decoded raster locked into a caller-owned pixel buffer. The
// zero value is inert; populate one only through Load, and Close it when
// done. Closing twice is guarded.
type Image struct {
	Width  int
	Height int

	// Stride is the distance in bytes between the starts of consecutive
	// rows, always Width*4.
	Stride int

	// Format is the fixed 32bpp ARGB pixel format tag.
	Format uint32

	bitmap uintptr
	bd     bitmapData
}

// Load decodes the image file at path into a fresh, zero-initialized,
// 64-byte-size-rounded pixel buffer. The subsystem writes decoded pixels
// directly into that buffer. On failure no native resources remain held and
// the returned error wraps one of the package's sentinel errors.
func Load(path string) (*Image, error) {
	m := &Image{}
	if err := load(path, m); err != nil {
		return nil, err
	}
	return m, nil
}

// load runs the acquisition stages in order. Each failure path unwinds
// exactly the stages that committed a resource, in reverse order.
func load(path string, m *Image) error {
	if err := reg.retain(); err != nil {
		return err
	}

	wpath, err := utf16Path(path)
	if err != nil {
		reg.release()
		return err
	}

	var bitmap uintptr
	if status := reg.fn.createFromFile(wpath, &bitmap); status != statusOK {
		reg.release()
		return fmt.Errorf("%w: %q: status %d", ErrDecode, path, status)
	}

	var w, h uint32
	if status := reg.fn.getWidth(bitmap, &w); status != statusOK {
		reg.fn.disposeImage(bitmap)
		reg.release()
		return fmt.Errorf("%w: width: status %d", ErrMeasure, status)
	}
	if status := reg.fn.getHeight(bitmap, &h); status != statusOK {
		reg.fn.disposeImage(bitmap)
		reg.release()
		return fmt.Errorf("%w: height: status %d", ErrMeasure, status)
	}

	size := (uintptr(w)*uintptr(h)*4 + bufferAlign - 1) &^ (bufferAlign - 1)
	buf := reg.host.alloc(size)
	if buf == 0 {
		reg.fn.disposeImage(bitmap)
		reg.release()
		return fmt.Errorf("%w: %d bytes", ErrAlloc, size)
	}

	m.bd = bitmapData{
		width:  w,
		height: h,
		stride: int32(w * 4),
		format: format32bppARGB,
		scan0:  buf,
	}
	full := rect{w: int32(w), h: int32(h)}
	flags := uint32(lockModeRead | lockModeWrite | lockModeUserInputBuf)
	if status := reg.fn.lockBits(bitmap, &full, flags, format32bppARGB, &m.bd); status != statusOK {
		reg.host.free(buf)
		m.bd = bitmapData{}
		reg.fn.disposeImage(bitmap)
		reg.release()
		return fmt.Errorf("%w: status %d", ErrLock, status)
	}

	m.bitmap = bitmap
	m.Width = int(w)
	m.Height = int(h)
	m.Stride = int(w * 4)
	m.Format = format32bppARGB
	return nil
}

// Pix returns the locked pixel buffer: Height*Stride bytes of little-endian
// BGRA rows, valid until Close. The allocation extends past the logical end
// to the next 64-byte boundary and that padding is zero, so vector loops
// may read beyond the last row.
func (m *Image) Pix() []byte {
	if m.bd.scan0 == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(m.bd.scan0)), m.Height*m.Stride)
}

// Close unwinds the acquisition in reverse order: unlock, free the buffer,
// dispose the native image, release the registry reference. The buffer is
// logically owned by the still-locked image until unlocked, so the ordering
// is a correctness requirement. A second Close performs no native calls
// beyond the registry release, which no-ops on an empty registry.
func (m *Image) Close() error {
	if m.bd.scan0 != 0 {
		reg.fn.unlockBits(m.bitmap, &m.bd)
		reg.host.free(m.bd.scan0)
		m.bd.scan0 = 0
	}
	if m.bitmap != 0 {
		reg.fn.disposeImage(m.bitmap)
		m.bitmap = 0
	}
	reg.release()
	return nil
}

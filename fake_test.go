package leanimg

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"unsafe"
)

// fakeHost stands in for both the kernel-equivalent collaborator and the
// imaging subsystem. resolve hands out synthetic entry points and bind
// wires them to in-process implementations that count every native call.
type fakeHost struct {
	// failure injection
	openErr       bool
	missingSymbol string
	startupStatus uint32
	createStatus  uint32
	widthStatus   uint32
	heightStatus  uint32
	lockStatus    uint32
	allocFail     bool

	// geometry served by the fake decoder
	width  uint32
	height uint32

	// native call counters
	opens     int
	closes    int
	startups  int
	shutdowns int
	creates   int
	disposes  int
	locks     int
	unlocks   int
	badFrees  int

	nextEntry  uintptr
	entryNames map[uintptr]string

	nextBitmap  uintptr
	liveBitmaps map[uintptr]bool

	allocs     map[uintptr][]byte
	allocSizes []uintptr

	locked     map[uintptr]bool
	lastLocked bitmapData
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		width:       10,
		height:      10,
		entryNames:  map[uintptr]string{},
		liveBitmaps: map[uintptr]bool{},
		allocs:      map[uintptr][]byte{},
		locked:      map[uintptr]bool{},
	}
}

// withFakeHost installs f as the registry's platform for one test and
// restores the real one afterwards.
func withFakeHost(t *testing.T, f *fakeHost) {
	t.Helper()
	saved := reg
	reg = registry{newHost: func() (host, error) { return f, nil }}
	t.Cleanup(func() { reg = saved })
}

func (f *fakeHost) open(name string) (uintptr, error) {
	if f.openErr {
		return 0, errors.New("module not found")
	}
	f.opens++
	return 0x1000, nil
}

func (f *fakeHost) close(handle uintptr) {
	f.closes++
}

func (f *fakeHost) resolve(module uintptr, name string) (uintptr, error) {
	if name == f.missingSymbol {
		return 0, fmt.Errorf("symbol %s not found", name)
	}
	f.nextEntry++
	f.entryNames[f.nextEntry] = name
	return f.nextEntry, nil
}

func (f *fakeHost) bind(fptr any, entry uintptr) {
	impl := f.impl(f.entryNames[entry])
	reflect.ValueOf(fptr).Elem().Set(reflect.ValueOf(impl))
}

func (f *fakeHost) alloc(size uintptr) uintptr {
	if f.allocFail {
		return 0
	}
	buf := make([]byte, size)
	p := uintptr(unsafe.Pointer(&buf[0]))
	f.allocs[p] = buf
	f.allocSizes = append(f.allocSizes, size)
	return p
}

func (f *fakeHost) free(p uintptr) {
	if _, ok := f.allocs[p]; !ok {
		f.badFrees++
		return
	}
	delete(f.allocs, p)
}

func (f *fakeHost) impl(name string) any {
	switch name {
	case "GdiplusStartup":
		return func(token *uintptr, input *startupInput, output uintptr) uint32 {
			f.startups++
			if f.startupStatus != 0 {
				return f.startupStatus
			}
			if input.version != 1 {
				return 2
			}
			*token = 0xCAFE
			return 0
		}
	case "GdiplusShutdown":
		return func(token uintptr) uint32 {
			f.shutdowns++
			return 0
		}
	case "GdipCreateBitmapFromFile":
		return func(path *uint16, bitmap *uintptr) uint32 {
			f.creates++
			if f.createStatus != 0 {
				return f.createStatus
			}
			f.nextBitmap++
			*bitmap = 0x2000 + f.nextBitmap
			f.liveBitmaps[*bitmap] = true
			return 0
		}
	case "GdipDisposeImage":
		return func(bitmap uintptr) uint32 {
			f.disposes++
			delete(f.liveBitmaps, bitmap)
			return 0
		}
	case "GdipGetImageWidth":
		return func(bitmap uintptr, width *uint32) uint32 {
			if f.widthStatus != 0 {
				return f.widthStatus
			}
			*width = f.width
			return 0
		}
	case "GdipGetImageHeight":
		return func(bitmap uintptr, height *uint32) uint32 {
			if f.heightStatus != 0 {
				return f.heightStatus
			}
			*height = f.height
			return 0
		}
	case "GdipBitmapLockBits":
		return func(bitmap uintptr, r *rect, flags uint32, format uint32, data *bitmapData) uint32 {
			f.locks++
			if f.lockStatus != 0 {
				return f.lockStatus
			}
			if flags&lockModeUserInputBuf == 0 || data.scan0 == 0 {
				return 7
			}
			buf, ok := f.allocs[data.scan0]
			if !ok {
				return 7
			}
			// decode straight into the caller's buffer
			for i := range buf[:int(data.height)*int(data.stride)] {
				buf[i] = byte(i)
			}
			f.locked[data.scan0] = true
			f.lastLocked = *data
			return 0
		}
	case "GdipBitmapUnlockBits":
		return func(bitmap uintptr, data *bitmapData) uint32 {
			f.unlocks++
			if !f.locked[data.scan0] {
				return 8
			}
			delete(f.locked, data.scan0)
			return 0
		}
	}
	panic("fakeHost: unknown entry point " + name)
}

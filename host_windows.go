//go:build windows

package leanimg

import (
	"fmt"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

const (
	imagingModule = "gdiplus.dll"

	// globalPtr allocates fixed, zero-initialized memory
	// (GMEM_FIXED | GMEM_ZEROINIT).
	globalPtr = 0x0040
)

// winHost resolves the kernel32 entry points it needs by name and serves
// module loading and raw memory on top of them. Nothing from kernel32 or
// gdiplus appears in the import table.
type winHost struct {
	kernel      uintptr
	loadLibrary func(name string) uintptr
	freeLibrary func(handle uintptr) int32
	globalAlloc func(flags uint32, size uintptr) uintptr
	globalFree  func(p uintptr) uintptr
}

func newHost() (host, error) {
	name, err := windows.UTF16PtrFromString("kernel32.dll")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBind, err)
	}
	kernel, err := windows.GetModuleHandle(name)
	if err != nil {
		return nil, fmt.Errorf("%w: kernel32: %v", ErrBind, err)
	}

	h := &winHost{kernel: uintptr(kernel)}
	for _, e := range []struct {
		name string
		fptr any
	}{
		{"LoadLibraryA", &h.loadLibrary},
		{"FreeLibrary", &h.freeLibrary},
		{"GlobalAlloc", &h.globalAlloc},
		{"GlobalFree", &h.globalFree},
	} {
		entry, err := h.resolve(h.kernel, e.name)
		if err != nil {
			return nil, err
		}
		h.bind(e.fptr, entry)
	}

	return h, nil
}

func (h *winHost) open(name string) (uintptr, error) {
	handle := h.loadLibrary(name)
	if handle == 0 {
		return 0, fmt.Errorf("cannot load library %s", name)
	}
	return handle, nil
}

func (h *winHost) close(handle uintptr) {
	h.freeLibrary(handle)
}

func (h *winHost) resolve(module uintptr, name string) (uintptr, error) {
	entry, err := windows.GetProcAddress(windows.Handle(module), name)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrBind, name, err)
	}
	return entry, nil
}

func (h *winHost) bind(fptr any, entry uintptr) {
	purego.RegisterFunc(fptr, entry)
}

func (h *winHost) alloc(size uintptr) uintptr {
	return h.globalAlloc(globalPtr, size)
}

func (h *winHost) free(p uintptr) {
	h.globalFree(p)
}

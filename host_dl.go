//go:build unix

package leanimg

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// dlHost serves module loading and symbol resolution through the host
// dynamic linker, and raw memory through calloc/free resolved by name from
// the default lookup scope.
type dlHost struct {
	calloc func(n, size uintptr) uintptr
	cfree  func(p uintptr)
}

func newHost() (host, error) {
	h := &dlHost{}
	for _, e := range []struct {
		name string
		fptr any
	}{
		{"calloc", &h.calloc},
		{"free", &h.cfree},
	} {
		entry, err := h.resolve(purego.RTLD_DEFAULT, e.name)
		if err != nil {
			return nil, err
		}
		h.bind(e.fptr, entry)
	}

	return h, nil
}

func (h *dlHost) open(name string) (uintptr, error) {
	var err error
	for _, path := range append([]string{name}, moduleFallbacks...) {
		var handle uintptr
		handle, err = purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return handle, nil
		}
	}
	return 0, fmt.Errorf("cannot load library: %w", err)
}

func (h *dlHost) close(handle uintptr) {
	purego.Dlclose(handle)
}

func (h *dlHost) resolve(module uintptr, name string) (uintptr, error) {
	entry, err := purego.Dlsym(module, name)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrBind, name, err)
	}
	return entry, nil
}

func (h *dlHost) bind(fptr any, entry uintptr) {
	purego.RegisterFunc(fptr, entry)
}

func (h *dlHost) alloc(size uintptr) uintptr {
	return h.calloc(1, size)
}

func (h *dlHost) free(p uintptr) {
	h.cfree(p)
}

package leanimg

import (
	"fmt"

	"go.uber.org/zap"
)

// imagingFuncs holds the entry points resolved from the imaging module,
// valid only while the registry holds a session.
type imagingFuncs struct {
	startup        func(token *uintptr, input *startupInput, output uintptr) uint32
	shutdown       func(token uintptr) uint32
	createFromFile func(path *uint16, bitmap *uintptr) uint32
	disposeImage   func(bitmap uintptr) uint32
	getWidth       func(bitmap uintptr, width *uint32) uint32
	getHeight      func(bitmap uintptr, height *uint32) uint32
	lockBits       func(bitmap uintptr, r *rect, flags uint32, format uint32, data *bitmapData) uint32
	unlockBits     func(bitmap uintptr, data *bitmapData) uint32
}

// registry is the process-wide, reference-counted holder of the imaging
// session: the host, the imaging module handle, its resolved entry points,
// and the session token. Everything is either fully populated (refs > 0) or
// fully cleared; a failed retain never leaves partial state behind.
type registry struct {
	refs    uint
	token   uintptr
	imaging uintptr
	host    host
	fn      imagingFuncs

	newHost func() (host, error)
}

var reg = registry{newHost: newHost}

// retain takes one reference on the imaging session, resolving everything
// on the first call. Later calls only increment the count. On failure
// nothing is retained and the registry stays uninitialized.
func (r *registry) retain() error {
	if r.refs > 0 {
		r.refs++
		return nil
	}

	h, err := r.newHost()
	if err != nil {
		return err
	}

	mod, err := h.open(imagingModule)
	if err != nil {
		Logger().Warn("imaging module load failed",
			zap.String("module", imagingModule), zap.Error(err))
		return fmt.Errorf("%w: load %s: %v", ErrBind, imagingModule, err)
	}

	var fn imagingFuncs
	for _, e := range []struct {
		name string
		fptr any
	}{
		{"GdiplusStartup", &fn.startup},
		{"GdiplusShutdown", &fn.shutdown},
		{"GdipCreateBitmapFromFile", &fn.createFromFile},
		{"GdipDisposeImage", &fn.disposeImage},
		{"GdipGetImageWidth", &fn.getWidth},
		{"GdipGetImageHeight", &fn.getHeight},
		{"GdipBitmapLockBits", &fn.lockBits},
		{"GdipBitmapUnlockBits", &fn.unlockBits},
	} {
		entry, err := h.resolve(mod, e.name)
		if err != nil {
			h.close(mod)
			return fmt.Errorf("%w: resolve %s: %v", ErrBind, e.name, err)
		}
		h.bind(e.fptr, entry)
	}

	var token uintptr
	input := startupInput{version: 1}
	if status := fn.startup(&token, &input, 0); status != statusOK {
		h.close(mod)
		return fmt.Errorf("%w: startup status %d", ErrBind, status)
	}

	r.refs = 1
	r.token = token
	r.imaging = mod
	r.host = h
	r.fn = fn
	Logger().Debug("imaging session started", zap.String("module", imagingModule))
	return nil
}

// release drops one reference; the last release shuts the session down and
// frees the imaging module. Releasing an empty registry is a no-op.
func (r *registry) release() {
	if r.refs == 0 {
		return
	}
	r.refs--
	if r.refs > 0 {
		return
	}
	r.fn.shutdown(r.token)
	r.host.close(r.imaging)
	*r = registry{newHost: r.newHost}
	Logger().Debug("imaging session stopped")
}

package leanimg

// host abstracts the kernel-equivalent collaborators: the module loader,
// the per-symbol resolver, and the raw allocator. Implementations resolve
// their own entry points by name at construction time; nothing is bound at
// link time.
type host interface {
	// open loads a module by name and returns its handle.
	open(name string) (uintptr, error)

	// close frees a module handle obtained from open.
	close(handle uintptr)

	// resolve returns the entry point of a named function in module.
	resolve(module uintptr, name string) (uintptr, error)

	// bind attaches the typed function pointed to by fptr to an entry
	// point obtained from resolve.
	bind(fptr any, entry uintptr)

	// alloc returns zero-initialized memory of the given size, or 0.
	alloc(size uintptr) uintptr

	// free releases memory obtained from alloc.
	free(p uintptr)
}

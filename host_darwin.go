//go:build darwin

package leanimg

const imagingModule = "libgdiplus.dylib"

var moduleFallbacks = []string{
	"/opt/homebrew/lib/libgdiplus.dylib",
	"/usr/local/lib/libgdiplus.dylib",
}

//go:build unix && !darwin

package leanimg

const imagingModule = "libgdiplus.so.0"

var moduleFallbacks []string

//go:build !unix && !windows

package leanimg

import (
	"fmt"
	"runtime"
)

const imagingModule = ""

func newHost() (host, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
}

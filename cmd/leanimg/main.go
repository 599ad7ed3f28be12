// Command leanimg loads a single image and reports its geometry, driving
// one full acquire/dispose cycle against the native imaging subsystem.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pixfold/leanimg"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: leanimg [-v] <image-file>")
		os.Exit(2)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, "leanimg:", err)
			os.Exit(1)
		}
		defer logger.Sync()
		leanimg.SetLogger(logger)
	}

	img, err := leanimg.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "leanimg:", err)
		os.Exit(1)
	}
	defer img.Close()

	fmt.Printf("%s: %dx%d stride=%d format=%#08x pixels=%d bytes\n",
		flag.Arg(0), img.Width, img.Height, img.Stride, img.Format, len(img.Pix()))
}

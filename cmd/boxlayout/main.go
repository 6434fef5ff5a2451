// Command boxlayout lays out an HTML fragment on pages, and writes the
// result as a PDF of box outlines, or as a text or JSON dump.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

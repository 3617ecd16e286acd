package version

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Package returns the overall, canonical project import path under
// which the package was built.
func Package() string {
	return mainpkg
}

// Version returns returns the module version the running binary was
// built from.
func Version() string {
	return version
}

// Revision returns the VCS (e.g. git) revision being used to build
// the program at linking time.
func Revision() string {
	return revision
}

// FprintVersion outputs the version string to the writer, in the following
// format, followed by a newline:
//
//	<cmd> <project> <version> [<revision>]
//
// For example, a binary "mdsum" built from github.com/distribution/mdhash
// with version "v0.1.0" would print the following:
//
//	mdsum github.com/distribution/mdhash v0.1.0
func FprintVersion(w io.Writer) {
	if Revision() == "" {
		fmt.Fprintln(w, filepath.Base(os.Args[0]), Package(), Version())
		return
	}
	fmt.Fprintln(w, filepath.Base(os.Args[0]), Package(), Version(), Revision())
}

// PrintVersion outputs the version information, from Fprint, to stdout.
func PrintVersion() {
	FprintVersion(os.Stdout)
}

// Package termsize reports the width of the terminal output is written to.
package termsize

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is used when the width cannot be determined.
const DefaultWidth = 80

// Replaced in tests.
var (
	getSize   = term.GetSize
	isTTY     = isTerminal
	lookupEnv = os.LookupEnv
)

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Width returns the column count of the terminal on fd. When fd is not a
// terminal, or its size cannot be read, the COLUMNS environment variable
// is consulted, and failing that DefaultWidth is returned.
func Width(fd uintptr) int {
	if isTTY(fd) {
		if w, _, err := getSize(int(fd)); err == nil && w > 0 {
			return w
		}
	}
	if v, ok := lookupEnv("COLUMNS"); ok {
		if w, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWidth
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isTTY(f.Fd())
}

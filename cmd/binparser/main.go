// Command binparser is a small demonstration binary: it builds the
// length-prefixed-array descriptor from the package's own test scenarios,
// decodes one constant buffer with it, and logs the result. It is not a
// schema-file loader or a general-purpose CLI — the library has no on-disk
// descriptor format to load.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/thebagchi/binparser"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
	if err != nil {
		logger.Warn("could not adjust GOMAXPROCS", "error", err)
	} else {
		defer undo()
	}

	elem := binparser.New(nil).UInt16BE("v")
	descriptor := binparser.New(nil).
		UInt8("n").
		Array("xs", elem, binparser.LengthField("n"))

	buf := []byte{0x02, 0x00, 0x0A, 0x00, 0x0B}
	obj, err := descriptor.Parse(buf)
	if err != nil {
		logger.Error("decode failed", "error", err)
		os.Exit(1)
	}

	n, _ := obj.Get("n")
	xs, _ := obj.Get("xs")
	logger.Info("decoded", "n", n, "elements", len(xs.([]any)))
}

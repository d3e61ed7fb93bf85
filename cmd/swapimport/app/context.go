package app

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

const DebugEnv = "DEBUG"

// NewLogger returns a stdr logger writing to w. Verbose enables V(1) and
// file:line prefixes.
func NewLogger(w io.Writer, verbose bool) logr.Logger {
	flags := log.LstdFlags
	if verbose || os.Getenv(DebugEnv) == "1" {
		flags |= log.Lshortfile
		stdr.SetVerbosity(1)
	} else {
		stdr.SetVerbosity(0)
	}
	return stdr.NewWithOptions(log.New(w, "", flags), stdr.Options{LogCaller: stdr.Error})
}

func BaseContext(verbose bool) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	ctx = logr.NewContext(ctx, NewLogger(os.Stderr, verbose))
	return ctx, cancel
}

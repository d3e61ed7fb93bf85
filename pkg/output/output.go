package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	swaperrors "kubegems.io/swapimport/pkg/errors"
)

const (
	DefaultFileMode = 0o644
	DefaultDirMode  = 0o755
)

type Kind int

const (
	KindStdout Kind = iota
	KindFile
)

type Options struct {
	DryRun     bool
	InputPath  string
	OutputPath string
	NoClobber  bool
}

// Destination is where the rendered config goes. NoClobber is only set for
// an explicit output path; overwriting the input in place is always allowed.
type Destination struct {
	Kind      Kind
	Path      string
	NoClobber bool
}

func (d Destination) String() string {
	if d.Kind == KindStdout {
		return "stdout"
	}
	return d.Path
}

// Decide picks the destination: dry run, then explicit output, then the
// input file in place, then stdout.
func Decide(options Options) Destination {
	switch {
	case options.DryRun:
		return Destination{Kind: KindStdout}
	case options.OutputPath != "":
		return Destination{Kind: KindFile, Path: options.OutputPath, NoClobber: options.NoClobber}
	case options.InputPath != "":
		return Destination{Kind: KindFile, Path: options.InputPath}
	default:
		return Destination{Kind: KindStdout}
	}
}

// Write sends content to dest. Nothing is written when a no-clobber
// destination already exists.
func Write(ctx context.Context, dest Destination, content []byte, stdout io.Writer) error {
	log := logr.FromContextOrDiscard(ctx)
	if dest.Kind == KindStdout {
		if _, err := stdout.Write(content); err != nil {
			return swaperrors.NewOutputWriteError("stdout", err)
		}
		return nil
	}

	if dest.NoClobber {
		if _, err := os.Stat(dest.Path); err == nil {
			return swaperrors.NewOutputExistsError(dest.Path)
		} else if !os.IsNotExist(err) {
			return swaperrors.NewOutputWriteError(dest.Path, err)
		}
	}
	if dir := filepath.Dir(dest.Path); dir != "" {
		if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
			return swaperrors.NewOutputWriteError(dest.Path, fmt.Errorf("create directory %s: %w", dir, err))
		}
	}
	if err := os.WriteFile(dest.Path, content, DefaultFileMode); err != nil {
		return swaperrors.NewOutputWriteError(dest.Path, err)
	}
	log.Info("config written", "path", dest.Path, "bytes", len(content))
	return nil
}

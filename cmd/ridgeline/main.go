package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/huh"

	"github.com/alexcabrera/ridgeline/internal/version"
)

func main() {
	ctx := context.Background()
	cmd := newRootCmd()

	// An aborted form is not an error worth printing.
	errorHandler := func(w io.Writer, styles fang.Styles, err error) {
		if errors.Is(err, huh.ErrUserAborted) {
			return
		}
		fang.DefaultErrorHandler(w, styles, err)
	}

	if err := fang.Execute(ctx, cmd,
		fang.WithVersion(version.Version),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"kubegems.io/swapimport/cmd/swapimport/app"
)

const ErrExitCode = 1

func main() {
	if err := app.NewSwapImportCmd().Execute(); err != nil {
		os.Exit(ErrExitCode)
	}
}

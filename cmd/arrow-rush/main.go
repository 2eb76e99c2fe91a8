package main

import (
	"os"

	"github.com/lixenwraith/arrow-rush/cli"
	"github.com/lixenwraith/arrow-rush/core"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

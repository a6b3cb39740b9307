// Package main is introctl, an inspection tool for the intro timeline.
//
// Usage:
//
//	introctl frames [--width 1920 --height 1080] [--from 0 --to 150 --step 15]
//	introctl scale 1920x1080
//	introctl spring --profile name --frames 45
//	introctl validate [config.yaml]
//	introctl settings [--skip-intro=true] [--fullscreen=false]
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

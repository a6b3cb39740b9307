// Package main plays the Estudio G intro inside a terminal.
//
// Usage:
//
//	go run ./cmd/intro-term [flags]
//
// Flags:
//
//	--config <path>   Intro timeline YAML (default: built-in timeline)
//	--page <path>     Landing page content YAML (default: data/page.yaml)
//	--verbose         Write logs to intro-term.log
//
// Controls:
//
//	Escape/Space/Enter/q  - Skip the intro
//	j/k, arrows           - Scroll the landing page
//	q/Escape              - Quit from the landing page
//	Ctrl-C                - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/term"
	"github.com/gdamore/tcell/v2"
)

var (
	configFlag  = flag.String("config", "", "Intro timeline YAML (default: built-in timeline)")
	pageFlag    = flag.String("page", config.DefaultPageConfigPath, "Landing page content YAML")
	verboseFlag = flag.Bool("verbose", false, "Write logs to intro-term.log")
)

func main() {
	flag.Parse()

	// 终端被 tcell 接管，日志只能写文件
	log.SetOutput(io.Discard)
	if *verboseFlag {
		f, err := os.OpenFile("intro-term.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "intro-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.DefaultIntroConfig()
	if *configFlag != "" {
		loaded, err := config.LoadIntroConfig(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	content, err := config.LoadPageContent(*pageFlag)
	if err != nil {
		log.Printf("[TermHost] 落地页内容不可用: %v", err)
		content = &config.PageContent{Brand: "ESTUDIO G"}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	host, err := term.NewHost(screen, cfg, content)
	if err != nil {
		return err
	}
	host.Run()
	return nil
}

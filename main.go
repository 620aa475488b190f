// tilelight is an interactive terminal inspector for the lighting and
// pathfinding core: it generates a small town, puts an observer inside,
// and lets you watch the light map react as you move, burn and wait.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"tilelight/config"
	"tilelight/internal/demo"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML config overriding the embedded defaults")
	seed := flag.Int64("seed", 0, "World seed (0 uses the config, then the clock)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = cfg.Map.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: init screen: %v\n", err)
		os.Exit(1)
	}

	s := demo.NewSession(cfg, *seed)
	err = s.Run(screen)
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

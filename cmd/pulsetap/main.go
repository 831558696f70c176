// Package main is the entry point for pulsetap, a terminal monitor that
// tails events flowing through a pulse emitter.
//
// pulsetap wires a wildcard listener into an emitter, feeds the emitter
// from a synthetic event generator, and renders the most recent events in
// a full-screen terminal view. It doubles as a demo of the emitter's
// wildcard fan-out and as a diagnostic harness for option profiles.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/pulse/config"
	"github.com/dshills/pulse/emitter"
)

var (
	version = "dev"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "path to a JSON emitter profile")
		debug       = flag.Bool("debug", false, "enable emitter debug logging (to pulsetap.log)")
		rate        = flag.Duration("rate", 250*time.Millisecond, "synthetic event interval")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pulsetap %s\n", version)
		return 0
	}

	profile := config.DefaultProfile()
	if *configPath != "" {
		var err error
		profile, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if *debug {
		profile.Debug = true
	}

	opts := profile.Options()
	if profile.Debug {
		logger, err := newFileLogger("pulsetap.log")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
			return 1
		}
		defer logger.Sync() //nolint:errcheck // best-effort flush on exit
		opts = append(opts, emitter.WithLogf(logger.Sugar().Infof))
	}

	em := emitter.New(opts...)

	tap := newTap(em)
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go generate(ctx, em, *rate)

	return tap.loop(ctx, screen)
}

// newFileLogger builds a zap logger writing to path.
func newFileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// generate emits a stream of synthetic events until ctx is cancelled.
func generate(ctx context.Context, em *emitter.Emitter, interval time.Duration) {
	names := []string{
		"job.started",
		"job.progress",
		"job.completed",
		"worker.idle",
		"queue.depth",
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	seq := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			seq++
			name := names[rand.Intn(len(names))]
			em.EmitSync(ctx, name, seq, rand.Intn(100))
		}
	}
}

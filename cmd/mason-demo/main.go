// Command mason-demo builds a small widget tree, runs the layout and
// paint pipeline headlessly, and writes the result to a PNG. It doubles
// as a smoke test for the software rasterizer and the theme config
// loader.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/debug"
	"github.com/go-mason/mason/pkg/errors"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
	"github.com/go-mason/mason/pkg/widgets"
)

func main() {
	out := flag.String("o", "demo.png", "output PNG path")
	configDir := flag.String("config", ".", "directory holding mason.yaml")
	logPath := flag.String("passlog", "", "write the pass log as JSON to this path")
	verbose := flag.Bool("v", false, "verbose error logging")
	flag.Parse()

	errors.SetHandler(&errors.LogHandler{Verbose: *verbose})

	env := theme.WithTheme()
	cfg, err := theme.LoadOptional(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading theme config: %v\n", err)
		os.Exit(1)
	}
	if err := env.Apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "applying theme config: %v\n", err)
		os.Exit(1)
	}

	if err := run(env, *out, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(env *theme.Env, out, logPath string) error {
	root := widgets.NewColumn().
		WithChild(widgets.NewLabel("mason demo")).
		WithChild(widgets.NewSizedBox(widgets.NewSpinner()).FixedWidth(48).FixedHeight(48)).
		WithChild(widgets.NewButton("Press me")).
		WithFlexChild(widgets.NewEmptySizedBox(), 1)

	queue := core.NewExtEventQueue()
	var commands core.CommandQueue
	var actions core.ActionQueue
	logger := debug.NewLogger(logPath != "")

	window := core.NewWindowRoot(root, core.PassDeps{
		ExtSink:  queue.MakeSink(),
		Commands: &commands,
		Actions:  &actions,
		Logger:   logger,
	})

	size := graphics.Size{Width: 400, Height: 300}
	window.Event(core.WindowConnectedEvent{}, env)
	window.Event(core.WindowSizeEvent{Size: size}, env)
	window.DoLayout(env)

	surface := graphics.NewSurface(int(size.Width), int(size.Height))
	window.DoPaint(surface, env)

	if logPath != "" {
		if err := logger.WriteToFile(logPath); err != nil {
			return fmt.Errorf("writing pass log: %w", err)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, surface.Image()); err != nil {
		return fmt.Errorf("encoding %s: %w", out, err)
	}
	return nil
}

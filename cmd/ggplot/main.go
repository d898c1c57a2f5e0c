// Command ggplot plots CSV data and YAML plot files.
//
// Usage:
//
//	ggplot render -o waves.png sin.csv cos.csv
//	ggplot show plot.yaml
//	ggplot demo --backend terminal
//	ggplot backends
//
// Default arguments can be stored in $XDG_CONFIG_HOME/ggplot/ggplot.conf,
// separated by white space; they are read before the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"

	"github.com/gogpu/ggplot"
	"github.com/gogpu/ggplot/canvas"
	_ "github.com/gogpu/ggplot/canvas/imagecanvas"
	_ "github.com/gogpu/ggplot/canvas/termcanvas"
	_ "github.com/gogpu/ggplot/canvas/windowcanvas"
)

// configPath is the config file location below the XDG config directories.
var configPath = filepath.Join("ggplot", "ggplot.conf")

// loadConfig returns the default arguments from the config file, or nil
// when there is none.
func loadConfig() ([]string, error) {
	path, err := xdg.SearchConfigFile(configPath)
	if err != nil {
		// no config file
		return nil, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return strings.Fields(string(b)), nil
}

// Globals holds the flags shared by every command.
type Globals struct {
	LogLevel string `enum:"debug,info,warn,error" default:"warn" help:"Log level (${enum})."`
	Width    int    `short:"W" default:"720" help:"Canvas width in pixels."`
	Height   int    `short:"H" default:"720" help:"Canvas height in pixels."`

	Margin     float64     `default:"0.05" help:"Fraction of each axis shown around the data."`
	Border     ggplot.RGBA `default:"#f2f2f2" help:"Color outside the data area."`
	Frame      ggplot.RGBA `default:"black" help:"Outline color of the data area."`
	Background ggplot.RGBA `default:"white" help:"Fill color of the data area."`

	stdout io.Writer    `kong:"-"`
	log    *slog.Logger `kong:"-"`
}

// canvasOptions returns canvas options for the global size.
func (g *Globals) canvasOptions() canvas.Options {
	opts := canvas.DefaultOptions()
	opts.Width, opts.Height = g.Width, g.Height
	opts.Logger = g.log
	return opts
}

// loopOptions returns plot loop options for the global flags.
func (g *Globals) loopOptions() []ggplot.LoopOption {
	return []ggplot.LoopOption{
		ggplot.WithMargin(g.Margin),
		ggplot.WithBorderColor(g.Border),
		ggplot.WithFrameColor(g.Frame),
		ggplot.WithBackgroundColor(g.Background),
		ggplot.WithLogger(g.log),
	}
}

// CLI is the command tree.
type CLI struct {
	Globals

	Render   RenderCmd   `cmd:"" help:"Render data to an image file."`
	Show     ShowCmd     `cmd:"" help:"Plot data in a window or terminal."`
	Demo     DemoCmd     `cmd:"" help:"Plot sine, cosine and a line."`
	Backends BackendsCmd `cmd:"" help:"List render backends."`
}

// newParser builds the kong parser writing to stdout and stderr.
func newParser(cli *CLI, stdout, stderr io.Writer, exit func(int)) (*kong.Kong, error) {
	opts := append([]kong.Option{
		kong.Name("ggplot"),
		kong.Description("Plot 2D line data."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Bind(&cli.Globals),
	}, TypeMappers...)
	return kong.New(cli, opts...)
}

// run parses args and runs the selected command. It returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	code := -1
	parser, err := newParser(&cli, stdout, stderr, func(c int) { code = c })
	if err != nil {
		fmt.Fprintln(stderr, "ggplot:", err)
		return 2
	}

	ctx, err := parser.Parse(args)
	if code >= 0 {
		// --help
		return code
	}
	if err != nil {
		fmt.Fprintln(stderr, "ggplot:", err)
		return 2
	}

	cli.stdout = stdout
	cli.log = newLogger(stderr, cli.LogLevel)
	ggplot.SetLogger(cli.log)

	if err := ctx.Run(); err != nil {
		fmt.Fprintln(stderr, "ggplot:", err)
		return 1
	}
	return 0
}

// newLogger returns a text logger at the named level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

func main() {
	cfgArgs, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ggplot:", err)
		os.Exit(2)
	}
	os.Exit(run(append(cfgArgs, os.Args[1:]...), os.Stdout, os.Stderr))
}

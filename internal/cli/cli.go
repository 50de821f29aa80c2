package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindtower/pkg/buildinfo"
	"github.com/matzehuels/mindtower/pkg/config"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mindtower"

	// stdinPath reads the input document from standard input.
	stdinPath = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the TOML file passed with --config. Empty means the
	// default location, which may be absent.
	ConfigPath string

	out io.Writer
	in  io.Reader
	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		in:     os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects documents written to stdout. Status lines always go
// to stderr.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// SetInput replaces standard input for commands reading "-".
func (c *CLI) SetInput(r io.Reader) {
	c.in = r
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mindtower lays out, renders and plays mind maps",
		Long: `Mindtower arranges hierarchical mind maps on concentric rings or with an
interactive force simulation, renders them to SVG, PNG or DOT, and serves a
reconstruction game in which players reconnect a shuffled map.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.ConfigPath, "config", "c", "", "config file (default: "+config.DefaultPath()+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.anchorsCommand())
	root.AddCommand(c.scoreCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.gameCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", c.ConfigPath, "store", cfg.Store.Backend)
	c.cfg = &cfg
	return cfg, nil
}

// options returns pipeline options seeded from the configuration.
func (c *CLI) options() (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	var opts pipeline.Options
	opts.ApplyConfig(cfg)
	opts.Logger = c.Logger
	return opts, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Input & Output
// =============================================================================

// readGraph loads and validates a graph document from path, or from stdin
// when path is "-".
func (c *CLI) readGraph(path string) (graph.Graph, error) {
	var (
		g   graph.Graph
		err error
	)
	if path == stdinPath {
		g, err = graph.ReadGraph(c.in)
	} else {
		g, err = graph.ReadGraphFile(path)
	}
	if err != nil {
		return graph.Graph{}, fmt.Errorf("load graph %s: %w", path, err)
	}
	g.Normalize()
	if err := g.Validate(); err != nil {
		return graph.Graph{}, fmt.Errorf("load graph %s: %w", path, err)
	}
	return g, nil
}

// writeOutput writes data to path, or to the command output when path is "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == stdinPath {
		_, err := c.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension (and a ".layout" suffix) from
// input. If output carries a known format extension, that extension is
// stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinPath {
			return appName
		}
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single
// format with an explicit output goes exactly there.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		if f == pipeline.FormatJSON {
			paths[f] = base + ".layout.json"
			continue
		}
		paths[f] = base + "." + f
	}
	return paths
}

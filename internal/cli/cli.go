// Package cli implements the dndreplay command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/droptarget/pkg/buildinfo"
	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/observability"
	"github.com/matzehuels/droptarget/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "dndreplay"

	// defaultView is the view commands target unless --view is given.
	defaultView = "main"
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// It also routes gesture and index events to the CLI logger.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Replay drag-and-drop gestures against a scene file",
		Long: `dndreplay loads a scene (a document plus one or more rendered views) and
replays pointer gestures against it: hit-testing drop targets, moving and
inserting nodes, lasso drawing and outline reordering.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	hooks := &logHooks{logger: c.Logger}
	observability.SetGestureHooks(hooks)
	observability.SetIndexHooks(hooks)

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.lassoCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.insertCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Scene Helpers
// =============================================================================

// loadView loads the scene at path and returns the named view.
func loadView(path, name string) (*scene.Scene, *scene.View, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}
	v, ok := s.View(name)
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeNotFound, "scene %s has no view %q", s.Name, name)
	}
	return s, v, nil
}

// options returns engine options for s that log through the CLI logger.
func (c *CLI) options(s *scene.Scene) dnd.Options {
	return dnd.Options{Config: s.Config, Logger: c.Logger}
}

// Command starfield previews the portfolio starfield in a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zachkp/portfolio/internal/prefs"
	"github.com/Zachkp/portfolio/internal/starfield"
	"github.com/Zachkp/portfolio/internal/tui"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type ctxKey int

const loggerKey ctxKey = 0

func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "starfield.db"
	}
	return filepath.Join(dir, "starfield", "prefs.db")
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		prefsPath  string
		layersPath string
	)

	root := &cobra.Command{
		Use:          "starfield",
		Short:        "Preview the portfolio starfield in the terminal",
		Long:         `Starfield draws the layered, twinkling portfolio background in the terminal. Press ctrl+s (or t, or click the header button) to switch it off and on; the choice is remembered between runs.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey, newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, prefsPath, layersPath)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().StringVar(&prefsPath, "prefs", defaultPrefsPath(), "SQLite file holding the stars preference")
	root.Flags().StringVar(&layersPath, "layers", "", "TOML file with [[layer]] density/size/opacity tables")

	root.AddCommand(newCountCmd())
	return root
}

func runPreview(cmd *cobra.Command, prefsPath, layersPath string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	layers, err := starfield.LoadLayerSpecs(layersPath)
	if err != nil {
		return err
	}

	// An unusable preference file only costs persistence, not the preview.
	var store starfield.Store
	db, err := prefs.Open(ctx, prefsPath)
	if err != nil {
		logger.Warn("preferences unavailable, keeping them for this run only", "path", prefsPath, "err", err)
		store = prefs.NewMemory()
	} else {
		defer db.Close()
		store = db
	}

	ctrl := starfield.NewController(store, logger, starfield.WithLayers(layers))
	model := tui.New(ctrl)
	defer model.Close()

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		logger.Debug("stdout is not a terminal, printing one frame")
		fmt.Fprintln(out, model.SetSize(80, 24).View())
		return nil
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run preview: %w", err)
	}
	return nil
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count DENSITY...",
		Short: "Print the number of stars a layer of each density contains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				d, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid density %q: %w", arg, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", arg, starfield.StarCount(d))
			}
			return nil
		},
	}
}

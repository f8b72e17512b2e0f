// Package main provides the CLI entrypoint for keytrainer.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/keytrainer/internal/app"
	"github.com/verte-zerg/keytrainer/internal/config"
	"github.com/verte-zerg/keytrainer/internal/generator"
	"github.com/verte-zerg/keytrainer/internal/keyboard"
	"github.com/verte-zerg/keytrainer/internal/layout"
	"github.com/verte-zerg/keytrainer/internal/logging"
	"github.com/verte-zerg/keytrainer/internal/model"
	"github.com/verte-zerg/keytrainer/internal/router"
	"github.com/verte-zerg/keytrainer/internal/stats"
	"github.com/verte-zerg/keytrainer/internal/wordlist"
)

const (
	defaultRoute        = "/"
	defaultReleaseMs    = 150
	defaultGameDelay    = 1.0
	defaultGameCapacity = 20
	defaultGameCharset  = "abcdefghijklmnopqrstuvwxyz"
	defaultLength       = 30
	defaultPace         = 1.0
	defaultWeakTop      = 3
	defaultWeakFactor   = 2.0
)

var (
	runRoute   string
	runDebug   bool
	runLogFile string

	keyboardLayout    string
	keyboardReleaseMs int

	gameDelay    float64
	gameCapacity int
	gameCharset  string

	practiceLength     int
	practiceWordList   string
	practiceDelay      float64
	practiceWeakTop    int
	practiceWeakFactor float64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keytrainer",
		Short:         "Terminal typing trainer with an on-screen keyboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTrainerCmd,
	}

	rootCmd.Flags().StringVar(&runRoute, "route", defaultRoute, "screen to open (see: keytrainer routes)")
	rootCmd.Flags().BoolVar(&runDebug, "debug", false, "write debug logs")
	rootCmd.Flags().StringVar(&runLogFile, "log-file", "", "debug log path (default: $XDG_STATE_HOME/keytrainer/keytrainer.log)")
	rootCmd.PersistentFlags().StringVar(&keyboardLayout, "layout", "", "layout name or TOML file (default: qwerty)")
	rootCmd.Flags().IntVar(&keyboardReleaseMs, "release-ms", defaultReleaseMs, "how long a key stays lit after a press")
	rootCmd.Flags().Float64Var(&gameDelay, "delay", defaultGameDelay, "seconds between new characters in the game")
	rootCmd.Flags().IntVar(&gameCapacity, "capacity", defaultGameCapacity, "characters the game stream holds before it is over")
	rootCmd.Flags().StringVar(&gameCharset, "charset", defaultGameCharset, "characters the game draws from")
	rootCmd.Flags().IntVar(&practiceLength, "length", defaultLength, "characters per practice line")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list file for practice lines")
	rootCmd.Flags().Float64Var(&practiceDelay, "pace", defaultPace, "target seconds per character in practice")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newRoutesCmd())
	rootCmd.AddCommand(newLayoutCmd())

	return rootCmd
}

func runTrainerCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}
	closer, err := logging.Setup(logPath, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	l, err := loadLayout(cfg.Keyboard.LayoutFile)
	if err != nil {
		return err
	}

	var words []string
	if cfg.Practice.WordList != "" {
		words, err = wordlist.LoadWords(cfg.Practice.WordList)
		if err != nil {
			return fmt.Errorf("failed to load word list: %w", err)
		}
	}

	m, err := app.New(cfg, l, words, generator.New())
	if err != nil {
		return err
	}
	slog.Info("starting", "route", m.Route().Path, "keys", l.Len())
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return printRunSummary(cmd.OutOrStdout(), m.Tracker())
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "layout", &keyboardLayout, fileCfg.Keyboard.Layout)
	applyIntConfig(cmd, "release-ms", &keyboardReleaseMs, fileCfg.Keyboard.ReleaseMs)
	applyFloatConfig(cmd, "delay", &gameDelay, fileCfg.Game.Delay)
	applyIntConfig(cmd, "capacity", &gameCapacity, fileCfg.Game.Capacity)
	applyStringConfig(cmd, "charset", &gameCharset, fileCfg.Game.Charset)
	applyIntConfig(cmd, "length", &practiceLength, fileCfg.Practice.Length)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyFloatConfig(cmd, "pace", &practiceDelay, fileCfg.Practice.Delay)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)

	return model.Config{
		Route:   runRoute,
		Debug:   runDebug,
		LogFile: runLogFile,
		Keyboard: model.KeyboardConfig{
			LayoutFile: config.ResolveLayoutPath(keyboardLayout),
			ReleaseMs:  keyboardReleaseMs,
		},
		Game: model.GameConfig{
			Delay:    gameDelay,
			Capacity: gameCapacity,
			Charset:  strings.ToLower(gameCharset),
		},
		Practice: model.PracticeConfig{
			Length:     practiceLength,
			WordList:   practiceWordList,
			Delay:      practiceDelay,
			WeakTop:    practiceWeakTop,
			WeakFactor: practiceWeakFactor,
		},
	}, nil
}

func loadLayout(path string) (layout.Layout, error) {
	if path == "" {
		return layout.Default, nil
	}
	l, err := layout.Load(path)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("failed to load layout %s: %w", path, err)
	}
	return l, nil
}

func printRunSummary(w io.Writer, tracker *stats.Tracker) error {
	rounds := tracker.Rounds()
	if len(rounds) == 0 {
		return nil
	}
	if err := stats.RenderSummary(w, rounds); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCharTable(w, tracker.CharAggregates()); err != nil {
		return fmt.Errorf("failed to write char table: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the screens that --route accepts",
		Args:  cobra.NoArgs,
		RunE:  runRoutesCmd,
	}
}

func runRoutesCmd(cmd *cobra.Command, _ []string) error {
	for _, r := range router.Routes() {
		line := fmt.Sprintf("%-8s %-9s %s", r.Path, r.Screen, r.Title)
		if r.Charset != "" {
			line += " (" + r.Charset + ")"
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the keyboard layout",
		Args:  cobra.NoArgs,
		RunE:  runLayoutCmd,
	}
}

func runLayoutCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "layout", &keyboardLayout, fileCfg.Keyboard.Layout)
	l, err := loadLayout(config.ResolveLayoutPath(keyboardLayout))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		view := keyboard.New(l, nil, nil).View()
		width, _, err := term.GetSize(fd)
		if err == nil && lipgloss.Width(view) <= width {
			_, err := fmt.Fprintln(out, view)
			if err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		}
	}
	for _, row := range l.Rows() {
		if _, err := fmt.Fprintln(out, strings.Join(row, " ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keytrainer configuration
# Uncomment a value to enable it. CLI flags override config values.

[keyboard]
# layout = "qwerty"       # Layout name in $XDG_CONFIG_HOME/keytrainer/layouts or a TOML path
# release-ms = %d         # How long a key stays lit after a press

[game]
# delay = %.1f            # Seconds between new characters
# capacity = %d           # Characters the stream holds before the game is over
# charset = %q

[practice]
# length = %d             # Characters per practice line
# wordlist = ""           # Word list file, one word per line
# delay = %.1f            # Target seconds per character
# weak-top = %d           # Number of weak characters to focus on
# weak-factor = %.1f      # Weight factor for weak characters
`,
		defaultReleaseMs,
		defaultGameDelay,
		defaultGameCapacity,
		defaultGameCharset,
		defaultLength,
		defaultPace,
		defaultWeakTop,
		defaultWeakFactor,
	)
}

func validateConfig(cfg model.Config) error {
	if _, err := router.Resolve(cfg.Route); err != nil {
		return fmt.Errorf("--route: %w", err)
	}
	if cfg.Keyboard.ReleaseMs < 0 {
		return fmt.Errorf("--release-ms must be >= 0")
	}
	if cfg.Game.Delay <= 0 {
		return fmt.Errorf("--delay must be > 0")
	}
	if cfg.Game.Capacity <= 0 {
		return fmt.Errorf("--capacity must be > 0")
	}
	if cfg.Game.Charset == "" {
		return fmt.Errorf("--charset must not be empty")
	}
	if cfg.Practice.Length <= 0 {
		return fmt.Errorf("--length must be > 0")
	}
	if cfg.Practice.Delay <= 0 {
		return fmt.Errorf("--pace must be > 0")
	}
	if cfg.Practice.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.Practice.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}

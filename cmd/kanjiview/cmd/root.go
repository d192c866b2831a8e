// Package cmd contains all CLI commands for kanjiview.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/kanjiview/internal/audio"
	"github.com/f3rmion/kanjiview/internal/config"
	"github.com/f3rmion/kanjiview/internal/subject"
	"github.com/f3rmion/kanjiview/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kanjiview",
	Short: "Browse radicals, kanji and vocabulary with pronunciation audio",
	Long: `kanjiview shows WaniKani-style study subjects in the terminal:
  - Radicals, kanji and vocabulary with their meanings
  - Primary and alternate readings
  - Parts of speech for vocabulary
  - Pronunciation audio, fetched once and cached

Running 'kanjiview' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/kanjiview)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("db", "", "subject database (overrides config)")
	rootCmd.PersistentFlags().String("player", "", "audio player command (overrides config)")
	rootCmd.PersistentFlags().String("audio-url", "", "audio URL template taking the subject id (overrides config)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("player", rootCmd.PersistentFlags().Lookup("player"))
	viper.BindPFlag("audio_url", rootCmd.PersistentFlags().Lookup("audio-url"))
}

// initConfig resolves the config directory, reads ENV variables and sets up logging.
func initConfig() {
	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("KANJIVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig loads config.yaml and applies flag and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigDir())
	if err != nil {
		return nil, err
	}
	if v := viper.GetString("database"); v != "" {
		cfg.Database = v
	}
	if v := viper.GetString("player"); v != "" {
		cfg.Player = v
	}
	if v := viper.GetString("audio_url"); v != "" {
		cfg.AudioURL = v
	}
	return cfg, nil
}

// openDB opens the configured subject database.
func openDB(cfg *config.Config) (*subject.DB, error) {
	if err := os.MkdirAll(getConfigDir(), 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	return subject.OpenDB(cfg.Database)
}

// newPlayer returns the configured player, falling back to a silent timed
// player when no command is available.
func newPlayer(cfg *config.Config) audio.Player {
	if cfg.Player != "" {
		p, err := audio.NewCommandPlayer(cfg.Player, cfg.PlayerArgs...)
		if err == nil {
			return p
		}
		slog.Warn("configured audio player unavailable", "player", cfg.Player, "error", err)
	}
	p := audio.DefaultPlayer("")
	if _, ok := p.(audio.TimedPlayer); ok {
		slog.Info("no audio player found; playback will be silent")
	}
	return p
}

// runTUI launches the interactive subject browser.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	subjects, err := db.List(context.Background(), subject.Filter{})
	if err != nil {
		return err
	}

	model := tui.New(subjects, 0,
		audio.NewService(cfg.AudioDir, cfg.AudioURL, nil),
		newPlayer(cfg),
		tui.Options{ShowAllReadings: cfg.ShowAllReadings, AutoPlay: cfg.AutoPlay},
	)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/kanjiview/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Create the config directory and write config.yaml with default paths.

Edit audio_url to point at a server that serves <subject id>.mp3 files, for
example:
  audio_url: https://example.com/audio/%d.mp3`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := getConfigDir()
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := loadConfig()
	if err != nil {
		cfg = config.Default(dir)
	}
	if err := config.Save(dir, cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.AudioDir, 0755); err != nil {
		return fmt.Errorf("creating audio dir: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

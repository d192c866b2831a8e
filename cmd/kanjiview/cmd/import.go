package cmd

import (
	"fmt"

	"github.com/f3rmion/kanjiview/internal/subject"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <subjects.jsonl>",
	Short: "Import subjects from a JSON Lines file",
	Long: `Import radicals, kanji and vocabulary into the subject database.

Each line holds one subject:
  {"id": 2467, "kind": "vocabulary", "level": 1, "characters": "一つ",
   "meanings": [{"text": "One Thing", "primary": true}],
   "readings": [{"text": "ひとつ", "primary": true}],
   "parts_of_speech": ["numeral"], "audio_ids": [1]}

Malformed or invalid lines are skipped. Existing subjects with the same id
are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	st := subject.NewStore()
	skipped, err := st.LoadFromFile(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PutAll(cmd.Context(), st.Subjects()); err != nil {
		return fmt.Errorf("importing subjects: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d subjects", st.Size())
	if skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (skipped %d invalid lines)", skipped)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

package cmd

import (
	"fmt"

	"github.com/f3rmion/kanjiview/internal/subject"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	listLevel int
	listKind  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects in a table",
	Long: `List imported subjects with their meanings and readings.

Example:
  kanjiview list --level 3 --kind kanji`,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLevel, "level", "l", 0, "only subjects of this level")
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "only subjects of this kind (radical, kanji, vocabulary)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	kind := subject.Kind(listKind)
	if kind != "" && !kind.Valid() {
		return fmt.Errorf("unknown kind %q", listKind)
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

	subjects, err := db.List(cmd.Context(), subject.Filter{Level: listLevel, Kind: kind})
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Level", "Kind", "Characters", "Meanings", "Readings"})
	for _, s := range subjects {
		t.AppendRow(listRow(s))
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(subjects)})
	t.Render()
	return nil
}

func listRow(s *subject.Subject) table.Row {
	chars, err := subject.Japanese(s)
	if err != nil {
		chars = "-"
	}
	readings, err := subject.CommaSeparatedReadings(s)
	if err != nil {
		readings = "-"
	}
	return table.Row{s.ID, s.Level, s.Kind, chars, subject.CommaSeparatedMeanings(s), readings}
}

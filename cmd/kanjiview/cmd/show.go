package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/kanjiview/internal/audio"
	"github.com/f3rmion/kanjiview/internal/display"
	"github.com/f3rmion/kanjiview/internal/subject"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	showAll  bool
	showPlay bool
)

var showCmd = &cobra.Command{
	Use:   "show <id|characters>...",
	Short: "Show meanings, readings and parts of speech for subjects",
	Long: `Show one or more subjects by id or by characters.

Example:
  kanjiview show 440
  kanjiview show 一つ --play`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showAll, "all", "a", false, "show alternate kanji readings")
	showCmd.Flags().BoolVarP(&showPlay, "play", "p", false, "play pronunciation audio")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := db.Store(cmd.Context())
	if err != nil {
		return err
	}

	renderer := display.NewRenderer(lipgloss.NewRenderer(cmd.OutOrStdout()))
	out := cmd.OutOrStdout()
	var session *playSession
	if showPlay {
		session = newPlaySession(audio.NewService(cfg.AudioDir, cfg.AudioURL, nil), newPlayer(cfg), out)
		defer session.Close()
	}
	for _, arg := range args {
		s := findSubject(st, arg)
		if s == nil {
			fmt.Fprintf(out, "%s: not found\n\n", arg)
			continue
		}
		printSubject(out, renderer, s, showAll || cfg.ShowAllReadings)

		if session != nil && s.HasAudio() {
			if err := session.play(cmd.Context(), s); err != nil {
				fmt.Fprintf(out, "  Audio: %v\n", err)
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}

// findSubject resolves arg as an id first, then as characters.
func findSubject(st *subject.Store, arg string) *subject.Subject {
	if id, err := strconv.Atoi(arg); err == nil {
		if s := st.Lookup(id); s != nil {
			return s
		}
	}
	return st.LookupCharacters(arg)
}

const labelWidth = 16

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", runewidth.FillRight(label+":", labelWidth), value)
}

func printSubject(w io.Writer, r *display.Renderer, s *subject.Subject, showAll bool) {
	fmt.Fprintf(w, "%s (level %d, id %d)\n", s.Kind, s.Level, s.ID)

	if chars, err := subject.Japanese(s); err == nil {
		printField(w, "Characters", chars)
	}
	printField(w, "Meaning", r.Meanings(s))

	if s.Kind.HasReadings() {
		printField(w, "Reading", r.ReadingText(s, showAll))
		if alt := subject.AlternateReadings(s); len(alt) > 0 && !showAll && s.Kind == subject.KindKanji {
			printField(w, "", fmt.Sprintf("(+%d alternate, use --all)", len(alt)))
		}
	}

	if pos, err := subject.CommaSeparatedPartsOfSpeech(s); err == nil && pos != "" {
		printField(w, "Part of speech", pos)
	}
}

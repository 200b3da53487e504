package cmd

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/pianocoach/engine"
	"github.com/jsphweid/pianocoach/midi"
	"github.com/jsphweid/pianocoach/model"
	"github.com/spf13/cobra"
)

var (
	fromTick uint64
	maxNotes int
)

func init() {
	analyzeCmd.Flags().Uint64Var(&fromTick, "from-tick", 0, "skip notes before this tick")
	analyzeCmd.Flags().IntVar(&maxNotes, "max-notes", 0, "note events to read per track, 0 for all")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.mid>",
	Short: "Analyzes a MIDI file",
	Long:  `Reads a Standard MIDI File and prints the detected scale, skill level, timing check and practice suggestions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		if fromTick > 0 || maxNotes > 0 {
			if s, err = midi.Excerpt(s, fromTick, maxNotes); err != nil {
				return err
			}
		}
		return printJSON(analyzeNotes(midi.NoteEvents(s)))
	},
}

type fileAnalysis struct {
	Notes       int              `json:"notes"`
	Scale       model.ScaleMatch `json:"scale"`
	Skill       model.SkillLevel `json:"skill"`
	TimingIssue bool             `json:"timingIssue"`
	Suggestions []string         `json:"suggestions"`
	Focus       string           `json:"focus"`
}

func analyzeNotes(notes model.Notes) fileAnalysis {
	ons := notes.NoteOns()
	return fileAnalysis{
		Notes:       len(ons),
		Scale:       engine.New().IdentifyScale(ons.MidiNotes()),
		Skill:       engine.EstimateSkill(notes),
		TimingIssue: engine.HasTimingIssue(ons),
		Suggestions: engine.GenerateSuggestions(notes),
		Focus:       engine.SuggestFocusArea(notes),
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

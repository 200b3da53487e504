package cmd

import (
	"fmt"

	"github.com/jsphweid/pianocoach/logging"
	"github.com/jsphweid/pianocoach/pitch"
	"github.com/spf13/cobra"
)

var showNotes bool

func init() {
	inspectCmd.Flags().BoolVar(&showNotes, "notes", false, "print every note event")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <sessionId>",
	Short: "Inspects a stored session",
	Long:  `Inspects a stored session`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(storeKind, logging.Stderr())
		if err != nil {
			return err
		}
		s, err := st.GetSession(commandContext(cmd), args[0])
		if err != nil {
			return fmt.Errorf("%v: %w", args[0], err)
		}

		fmt.Printf("id: %v\n", s.Id)
		fmt.Printf("device: %v\n", s.DeviceInfo)
		fmt.Printf("startTime: %v\n", s.StartTime)
		if s.EndTime != nil {
			fmt.Printf("endTime: %v\n", *s.EndTime)
		}
		fmt.Printf("notes: %v (%v key presses)\n", len(s.Notes), len(s.Notes.NoteOns()))
		for _, suggestion := range s.AiSuggestions {
			fmt.Printf("suggestion: %v\n", suggestion)
		}
		if showNotes {
			for _, n := range s.Notes {
				fmt.Printf("%8d  %-3v %3d  vel %3d  on %v\n",
					n.Timestamp, pitch.FromMidi(n.MidiNote).Name(), n.MidiNote, n.Velocity, n.IsNoteOn)
			}
		}
		return nil
	},
}

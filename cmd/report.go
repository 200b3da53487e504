package cmd

import (
	"github.com/jsphweid/pianocoach/engine"
	"github.com/jsphweid/pianocoach/logging"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [sessionId]",
	Short: "Prints a progress report",
	Long:  `Prints a report for one session, or the progress across the most recent sessions when no id is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(storeKind, logging.Stderr())
		if err != nil {
			return err
		}
		var sessionId string
		if len(args) == 1 {
			sessionId = args[0]
		}
		report, err := buildReport(commandContext(cmd), st, engine.New(), sessionId)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

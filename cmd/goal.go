package cmd

import (
	"fmt"

	"github.com/jsphweid/pianocoach/engine"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(goalCmd)
}

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Prints a practice goal for today",
	Long:  `Prints a practice goal for today`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(engine.New().DailyGoal())
	},
}

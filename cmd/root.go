package cmd

import (
	"context"
	"fmt"

	"github.com/jsphweid/pianocoach/constants"
	"github.com/jsphweid/pianocoach/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	storeKind string
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "pianocoach",
	Short: "Practice feedback for MIDI piano sessions",
	Long: `pianocoach looks at the notes you play and suggests what to practice next:
the key you are in, chords to drill, timing problems, and how your sessions
are trending.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		constants.LoadEnv()
		if storeKind == "" {
			storeKind = constants.GetStoreKind()
		}
		if dataDir == "" {
			dataDir = constants.GetDataDir()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "session store: file, memory or dynamodb (env STORE)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for the file store (env DATA_DIR)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func openStore(kind string, log *zap.Logger) (store.Store, error) {
	switch kind {
	case "file":
		return store.NewFileStore(dataDir)
	case "memory":
		return store.NewMemoryStore(), nil
	case "dynamodb":
		return store.NewDynamoStore(store.DynamoConfig{
			Endpoint: constants.GetDynamoEndpoint(),
			Region:   constants.GetDynamoRegion(),
			Table:    constants.GetDynamoTable(),
		}, log)
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownStore, kind)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

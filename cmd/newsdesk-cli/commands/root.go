package commands

import (
	"context"
	"fmt"
	"os"

	"newsdesk-backend/lib/kv"

	"github.com/spf13/cobra"
)

var databasePath string

var rootCmd = &cobra.Command{
	Use:   "newsdesk-cli",
	Short: "newsdesk-cli operates the story extraction worker by hand.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&databasePath,
		"database",
		"newsdesk.db",
		"path or libsql url of the kv store",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func openStore() kv.SqliteStore {
	store, err := kv.Open(databasePath)
	if err != nil {
		fatal(err)
	}
	return store
}

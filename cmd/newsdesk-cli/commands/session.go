package commands

import (
	"fmt"

	"newsdesk-backend/lib/scrapers/gazette"
	"newsdesk-backend/lib/timezone"

	"github.com/spf13/cobra"
)

func init() {
	sessionCmd.AddCommand(sessionSetCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	rootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the stored session credential.",
}

var sessionSetCmd = &cobra.Command{
	Use:   "set <cookie>",
	Short: "Store a fresh session cookie produced by the browser refresher.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer store.Close()

		sessions := gazette.NewSessionStore(store)
		err := sessions.Save(cmd.Context(), args[0])
		if err != nil {
			fatal(err)
		}
		fmt.Println("session credential stored")
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored session credential and its staleness.",
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer store.Close()

		sessions := gazette.NewSessionStore(store)
		cred, err := sessions.Load(cmd.Context())
		if err != nil {
			fatal(err)
		}

		fmt.Println("cookie:", cred.Value)
		if cred.UpdatedAt.IsZero() {
			fmt.Println("updated: unknown")
			return
		}
		fmt.Println("updated:", cred.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Println("stale:", cred.Stale(timezone.Now()))
	},
}

package commands

import (
	"os"

	"newsdesk-backend/services/digest"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scrapeBaseUrl string

func init() {
	scrapeCmd.Flags().StringVar(
		&scrapeBaseUrl,
		"upstream",
		"",
		"override the upstream base url (staging mirrors)",
	)
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one fetch+extract cycle and print the stories found.",
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer store.Close()

		service, err := digest.NewService(cmd.Context(), store, digest.Options{
			BaseUrl: scrapeBaseUrl,
		})
		if err != nil {
			fatal(err)
		}

		articles, err := service.Run(cmd.Context())
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Title", "Url"})
		for _, a := range articles {
			t.AppendRow(table.Row{a.Title, a.Url})
		}
		t.Render()
	},
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the records of the store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		p, _, err := openPlugin(ctx, cmd)
		if err != nil {
			fatal("Error initializing formpost", err)
		}
		defer p.Close()

		records, err := p.Service().ListRecords(ctx)
		if err != nil {
			fatal("Error listing records", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(records); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, r := range records {
			fmt.Printf("%d\t%s\t%s\n", r.ID, r.Type, r.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}

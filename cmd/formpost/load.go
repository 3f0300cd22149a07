package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/formpost/pkg/core"
)

var loadRef string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Print the edit-form values of the title and content fields",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		p, _, err := openPlugin(ctx, cmd)
		if err != nil {
			fatal("Error initializing formpost", err)
		}
		defer p.Close()

		values, err := p.LoadValues(ctx, loadRef)
		if err != nil {
			fatal("Error loading values", err)
		}

		out, err := yaml.Marshal(core.NewSubmission(values...))
		if err != nil {
			fatal("Error encoding values", err)
		}
		fmt.Print(string(out))
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVar(&loadRef, "id", "", "Record reference (a record ID; anything else loads empty values)")
}

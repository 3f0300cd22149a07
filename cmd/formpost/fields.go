package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/formpost/pkg/fieldgroup"
)

var fieldsRecordType string

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Print the registered field groups as YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, registry, err := openPlugin(context.Background(), cmd)
		if err != nil {
			fatal("Error initializing formpost", err)
		}
		defer p.Close()

		groups := registry.Groups()
		if cmd.Flags().Changed("record-type") {
			groups = registry.GroupsFor(fieldsRecordType)
		}

		out, err := fieldgroup.Marshal(groups...)
		if err != nil {
			fatal("Error encoding field groups", err)
		}
		fmt.Print(string(out))
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	fieldsCmd.Flags().StringVar(&fieldsRecordType, "record-type", "", "Only groups whose location matches this record type")
}

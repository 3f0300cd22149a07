package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/formpost"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of formpost",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("formpost version %s\n", formpost.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/formpost/pkg/core"
)

var (
	submitID     int64
	submitFile   string
	submitAdmin  bool
	submitReason string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Run a form submission through the save pipeline",
	Long: `Reads a submission (a YAML mapping of field key to value, order preserved)
and saves it for a record. Title and content fields update the record; the
remaining fields are printed and stored as record fields.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sub, err := readSubmission(submitFile)
		if err != nil {
			fatal("Error reading submission", err)
		}

		ctx := core.WithAdmin(context.Background(), submitAdmin)
		if submitReason != "" {
			ctx = core.WithChangeReason(ctx, submitReason)
		}

		p, _, err := openPlugin(ctx, cmd)
		if err != nil {
			fatal("Error initializing formpost", err)
		}
		defer p.Close()

		res, err := p.Submit(ctx, submitID, sub)
		if err != nil {
			fatal("Error saving submission", err)
		}

		if res.Residual.Empty() {
			return
		}
		out, err := yaml.Marshal(res.Residual)
		if err != nil {
			fatal("Error encoding residual", err)
		}
		fmt.Print(string(out))
	},
}

// readSubmission decodes a YAML submission from path, or stdin for "-".
func readSubmission(path string) (*core.Submission, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	sub := core.NewSubmission()
	if err := yaml.NewDecoder(r).Decode(sub); err != nil && err != io.EOF {
		return nil, err
	}
	return sub, nil
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().Int64Var(&submitID, "id", 0, "Record ID")
	submitCmd.Flags().StringVarP(&submitFile, "file", "f", "-", "Submission file (- for stdin)")
	submitCmd.Flags().BoolVar(&submitAdmin, "admin", false, "Run in the administrative context (no mapping)")
	submitCmd.Flags().StringVarP(&submitReason, "message", "m", "", "Change reason recorded by versioned stores")
	_ = submitCmd.MarkFlagRequired("id")
}

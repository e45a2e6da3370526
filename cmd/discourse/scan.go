package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/discourse"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan SENTENCE...",
		Short: "Print the per-token features of each sentence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taxonomy, err := loadTaxonomy()
			if err != nil {
				return err
			}
			scanner := discourse.NewScanner(taxonomy)
			tokenizer := discourse.NewIterTokenizer()

			for i, sentence := range args {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := writeRecord(cmd.OutOrStdout(), scanner.Scan(tokenizer.Tokenize(sentence))); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func writeRecord(out io.Writer, rec discourse.SentenceRecord) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOKEN\tF\tFLIP\tHYP")
	for i := 0; i < rec.Len(); i++ {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", rec.W[i], rec.F[i], rec.Flip[i], rec.Hyp[i])
	}
	return w.Flush()
}

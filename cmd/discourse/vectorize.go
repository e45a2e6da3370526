package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/discourse"
)

// matrixOutput is the interchange form of a vectorization: a compressed
// sparse row triple plus the word owning each column block.
type matrixOutput struct {
	Rows       int       `json:"rows" yaml:"rows"`
	Cols       int       `json:"cols" yaml:"cols"`
	Indptr     []int     `json:"indptr" yaml:"indptr"`
	Indices    []int     `json:"indices" yaml:"indices"`
	Data       []float64 `json:"data" yaml:"data"`
	Vocabulary []string  `json:"vocabulary" yaml:"vocabulary"`
}

func newVectorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectorize [FILE...]",
		Short: "Build the feature matrix of a document collection",
		Long: `Each FILE is one document; standard input is read as a single document
when no file is given. The matrix is printed in compressed sparse row form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readDocuments(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			vz, err := vectorize(docs, viper.GetBool("progress"))
			if err != nil {
				return err
			}

			rows, cols := vz.Matrix.Dims()
			out := matrixOutput{
				Rows:       rows,
				Cols:       cols,
				Indptr:     vz.Matrix.Indptr(),
				Indices:    vz.Matrix.Indices(),
				Data:       vz.Matrix.Data(),
				Vocabulary: vz.Vocabulary.Words(),
			}
			return writeOutput(cmd.OutOrStdout(), viper.GetString("format"), out)
		},
	}

	cmd.Flags().String("format", "json", "output format: json or yaml")
	cmd.Flags().Int("workers", 1, "documents parsed concurrently")
	cmd.Flags().Bool("progress", false, "show a progress bar")
	viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("progress", cmd.Flags().Lookup("progress"))

	return cmd
}

func newVocabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab [FILE...]",
		Short: "List the vocabulary and its column blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readDocuments(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			vz, err := vectorize(docs, false)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tCOLUMNS\tWORD")
			for i, word := range vz.Vocabulary.Words() {
				col := i * discourse.FeaturesPerTerm
				fmt.Fprintf(w, "%d\t%d-%d\t%s\n", i, col, col+discourse.FeaturesPerTerm-1, word)
			}
			return w.Flush()
		},
	}
}

func readDocuments(stdin io.Reader, paths []string) ([]string, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading standard input: %w", err)
		}
		return []string{string(data)}, nil
	}

	docs := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading document: %w", err)
		}
		docs = append(docs, string(data))
	}
	log.Printf("read %d documents", len(docs))
	return docs, nil
}

func vectorize(docs []string, progress bool) (*discourse.Vectorization, error) {
	opts, err := vectorizerOptions()
	if err != nil {
		return nil, err
	}

	if progress {
		uiprogress.Start()
		defer uiprogress.Stop()
		bar := uiprogress.AddBar(len(docs))
		bar.AppendCompleted()
		bar.PrependElapsed()
		opts = append(opts, discourse.WithProgressCallback(func(done, total int) {
			bar.Set(done)
		}))
	}

	v, err := discourse.NewVectorizer(opts...)
	if err != nil {
		return nil, err
	}
	vz := v.Vectorize(docs)

	rows, cols := vz.Matrix.Dims()
	log.Printf("vectorized %d documents into %d columns (%d words, %d entries)",
		rows, cols, vz.Vocabulary.Len(), vz.Matrix.NNZ())
	return vz, nil
}

func writeOutput(w io.Writer, format string, out matrixOutput) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(out)
	}
	return fmt.Errorf("unknown output format %q: want json or yaml", format)
}

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/discourse"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "discourse",
	Short: "Discourse-cue features for text classification",
	Long: `discourse scans text for connectives, modals and negations and turns a
document collection into a sparse document-term feature matrix. Each
vocabulary word gets three columns: scope-weighted frequency, mean negation
flip and mean hypothetical flag.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !viper.GetBool("debug") {
			log.SetOutput(io.Discard)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	log.SetFlags(0)
	log.SetPrefix("discourse: ")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.discourse.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("language", string(discourse.English), "stopword language (en, es, fr, de, ja)")
	rootCmd.PersistentFlags().String("taxonomy", "", "YAML file with a custom cue taxonomy")
	rootCmd.PersistentFlags().Bool("segment", true, "split documents into sentences (otherwise one sentence per line)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("language", rootCmd.PersistentFlags().Lookup("language"))
	viper.BindPFlag("taxonomy", rootCmd.PersistentFlags().Lookup("taxonomy"))
	viper.BindPFlag("segment", rootCmd.PersistentFlags().Lookup("segment"))

	viper.SetDefault("language", string(discourse.English))
	viper.SetDefault("segment", true)
	viper.SetDefault("workers", 1)
	viper.SetDefault("format", "json")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newVectorizeCmd())
	rootCmd.AddCommand(newVocabCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".discourse")
	}

	viper.SetEnvPrefix("DISCOURSE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Println("using config file:", viper.ConfigFileUsed())
	}
}

// loadTaxonomy reads the configured taxonomy, or returns nil for the default.
func loadTaxonomy() (*discourse.Taxonomy, error) {
	path := viper.GetString("taxonomy")
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading taxonomy: %w", err)
	}
	taxonomy, err := discourse.TaxonomyFromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("loaded taxonomy from %s", path)
	return taxonomy, nil
}

// vectorizerOptions translates the configuration into library options.
func vectorizerOptions() ([]discourse.Option, error) {
	taxonomy, err := loadTaxonomy()
	if err != nil {
		return nil, err
	}

	lang := discourse.Language(viper.GetString("language"))
	if !discourse.IsStopwordLanguage(lang) {
		return nil, discourse.FormatLanguageError(lang)
	}

	return []discourse.Option{
		discourse.UsingTaxonomy(taxonomy),
		discourse.WithLanguage(lang),
		discourse.WithSegmentation(viper.GetBool("segment")),
		discourse.WithWorkers(viper.GetInt("workers")),
	}, nil
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/envform/internal/config"
	"github.com/bimmerbailey/envform/internal/convert"
	"github.com/bimmerbailey/envform/internal/output"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "envform [flags] [file]",
	Short: "Convert .env files to structured config formats",
	Long: `Envform converts .env-formatted key/value files into JSON, YAML,
or a JS module literal, with optional key filtering and secret redaction.

Examples:
  envform
  envform --format=yaml production.env
  envform --prefix=DB_ --output=db.json .env
  envform --redact=password,secret,token --format=js .env
  envform --generate-example .env`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.envform.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", config.DefaultFormat, "output format (json, yaml, js)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().String("whitelist", "", "comma-separated keys to keep")
	rootCmd.PersistentFlags().String("exclude", "", "comma-separated keys to drop")
	rootCmd.PersistentFlags().String("prefix", "", "keep only keys starting with prefix")
	rootCmd.PersistentFlags().String("redact", "", "comma-separated terms whose entries get masked")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.Flags().Bool("generate-example", false, "write a <file>.env.example listing all keys with blank values")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".envform")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ENVFORM")
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	generateExample, _ := cmd.Flags().GetBool("generate-example")
	opts.GenerateExample = generateExample

	result := convert.Convert(opts)
	if !result.Success {
		return errors.New(result.Error)
	}

	out := cmd.OutOrStdout()
	if result.Message != "" {
		fmt.Fprintln(out, result.Message)
		return nil
	}
	fmt.Fprintln(out, result.Data)
	return nil
}

// optionsFromFlags assembles conversion options from the merged flag, config
// file, and environment state.
func optionsFromFlags(cmd *cobra.Command, args []string) (convert.Options, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return convert.Options{}, fmt.Errorf("loading config: %w", err)
	}

	file := cfg.File
	if len(args) > 0 {
		file = args[0]
	}

	formatName := cfg.Format
	if cmd.Flags().Changed("format") {
		formatName, _ = cmd.Flags().GetString("format")
	}

	outputPath, _ := cmd.Flags().GetString("output")
	prefix, _ := cmd.Flags().GetString("prefix")

	redactTerms := cfg.Redact
	if cmd.Flags().Changed("redact") {
		raw, _ := cmd.Flags().GetString("redact")
		redactTerms = splitList(raw)
	}

	return convert.Options{
		File:      file,
		Format:    formatName,
		Output:    outputPath,
		Whitelist: listFlag(cmd, "whitelist"),
		Exclude:   listFlag(cmd, "exclude"),
		Prefix:    prefix,
		Redact:    redactTerms,
		Notices:   output.NewNotifier(cmd.ErrOrStderr()),
	}, nil
}

// listFlag returns the comma-separated list flag value, or nil when the flag
// was not given at all.
func listFlag(cmd *cobra.Command, name string) []string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	raw, _ := cmd.Flags().GetString(name)
	return splitList(raw)
}

// splitList splits a comma-separated value, trimming each element and
// dropping empties.
func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

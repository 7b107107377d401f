// Package cmd is for command line interactions with the offtarget application
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jjtimmons/offtarget/config"
	"github.com/jjtimmons/offtarget/internal/blast"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = newRootCmd(blast.ExecRunner{})

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. runner calls the external tools.
func newRootCmd(runner blast.Runner) *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	root := &cobra.Command{
		Use: "offtarget",
		Short: `Find off-target 100% identity matches of amplicons in a genome.
Amplicons are given as a BED file of intervals and BLASTed against the genome`,
		Version:      "0.1.0",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettings(v, cmd)
		},
	}

	root.PersistentFlags().String("config", "", "path to a YAML settings file")
	root.PersistentFlags().String("env-file", ".env", "path to a .env file with OFFTARGET_ settings")
	root.PersistentFlags().BoolP("verbose", "v", false, "log debug messages")

	root.AddCommand(newFindCmd(v, runner))
	root.AddCommand(newClassifyCmd(v))
	root.AddCommand(newDocsCmd(root))

	return root
}

// loadSettings merges the .env file, environment, settings file and the
// flags of the command being run into v.
func loadSettings(v *viper.Viper, cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file, _ := cmd.Flags().GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read settings file %s: %w", file, err)
		}
	}

	// only the running command's flags are bound: find and classify share names
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr := v.BindPFlag(f.Name, f); bindErr != nil && err == nil {
			err = bindErr
		}
	})
	return err
}

// settings returns the Config for a command after loadSettings.
func settings(v *viper.Viper) (config.Config, error) {
	return config.FromViper(v)
}

// newLogger writes human readable status lines, without a timestamp, to w.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(out).Level(level)
}

// addOutputFlags are the flags shared by commands that classify BLAST results.
func addOutputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntP("min-length", "l", 0, "minimum span of an off-target match to report it")
	flags.StringP("blast-result", "b", config.DefaultBlastResult, "tabular (-outfmt 6) BLAST result file")
	flags.StringP("output", "o", config.DefaultOutput, "TSV report of off-target matches")
	flags.Bool("same-chromosome", false, "also report matches outside the amplicon on its own chromosome")
	flags.String("summary", "", "write a YAML summary of the run to this path")
	flags.BoolP("print", "p", false, "print the off-target matches as a table to stdout")
}

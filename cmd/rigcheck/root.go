package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/config"
	"github.com/jamesainslie/rigcheck/pkg/rigcheck/logging"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "rigcheck",
		Short: "Score this machine's hardware for running local AI models",
		Long: `Rigcheck reads the CPU, memory, GPUs and free disk space of this machine,
scores each out of a fixed maximum and reports an overall rating together
with the classes of local AI models the best GPU can run.

Nothing leaves the machine: results are printed and, unless disabled, kept
in a local history database.

Examples:
  rigcheck                          # Assess this machine
  rigcheck -o json                  # Machine-readable report
  rigcheck --min-rating GOOD        # Exit 2 if the rating is below GOOD
  rigcheck --inventory rig.yaml     # Assess a saved inventory instead
  rigcheck catalog                  # Show the model catalog in effect
  rigcheck history                  # List past assessments`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: initializeLogging,
		RunE:              runAssess,
		SilenceUsage:      true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/rigcheck/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format: pretty, plain, json, yaml, markdown, csv, template")
	rootCmd.PersistentFlags().String("template", "", "Go template for -o template")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output on stderr")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("template", rootCmd.PersistentFlags().Lookup("template"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	addAssessFlags(rootCmd)
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if err := config.Setup(viper.GetViper(), cfgFile); err != nil {
		printError("%v", err)
	}
}

// loadConfig decodes the merged flag, env and file configuration without
// validating it. Commands validate the values they use.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Decode(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = logging.Close() }()
	return rootCmd.Execute()
}

func getVerbose() bool {
	return viper.GetBool("verbose")
}

func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...any) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...any) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

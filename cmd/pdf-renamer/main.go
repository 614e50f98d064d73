// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-renamer CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdf-renamer CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-renamer",
	Short: "Rename scientific publication PDFs after their bibliographic metadata",
	Long: `pdf-renamer inspects PDF files of scientific publications, finds their DOI
or arXiv identifier, retrieves the publication's bibliographic metadata from
doi.org or the arXiv API, and renames each file according to a configurable
format such as "{YYYY} - {Jabbr} - {Aetal}".

Point it at a single file or at a directory; with --subfolders every
subfolder is scanned too. Renames never overwrite an existing file: name
collisions get a " (2)", " (3)", ... suffix.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-renamer.yaml or ~/.config/pdf-renamer/config.yaml)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress per-file progress output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-renamer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-renamer"))
		}
	}

	viper.SetEnvPrefix("PDF_RENAMER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// progressWriter returns the destination for per-file progress lines,
// honoring --quiet.
func progressWriter(cmd *cobra.Command) io.Writer {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return io.Discard
	}
	return os.Stdout
}

// configDir returns the per-user configuration directory, creating it
// on first use.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "pdf-renamer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return dir, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

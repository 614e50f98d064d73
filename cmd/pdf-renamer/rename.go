package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-renamer/internal/format"
	"github.com/pdiddy/pdf-renamer/internal/renamer"
	"github.com/pdiddy/pdf-renamer/internal/resolve"
	"github.com/pdiddy/pdf-renamer/pkg/types"
)

const (
	defaultFormat    = "{YYYY} - {Jabbr} - {Aetal}"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "pdf-renamer/0.1"
)

var renameCmd = &cobra.Command{
	Use:   "rename <path>",
	Short: "Rename the PDF file or every PDF in the directory at path",
	Long: `Rename processes the target path. A file target is renamed in place; a
directory target has each of its PDF files renamed, and with --subfolders
every nested directory is scanned as well.

For each PDF the DOI or arXiv identifier is searched in the document text
(and the filename as a fallback), the bibliographic record is fetched, and
the file is renamed per the format template. Files whose identifier cannot
be found are left untouched and listed at the end.`,
	Args: cobra.ExactArgs(1),
	RunE: runRename,
}

func init() {
	renameCmd.Flags().StringP("format", "f", "", "filename format template (default \""+defaultFormat+"\")")
	renameCmd.Flags().Bool("subfolders", false, "also rename PDFs in subfolders of the target directory")
	renameCmd.Flags().Int("workers", 1, "number of files processed concurrently per directory")
	renameCmd.Flags().Bool("dry-run", false, "report what would be renamed without touching any file")
	renameCmd.Flags().String("report", "", "write a YAML report of all results to this file")
	renameCmd.Flags().Bool("no-web-validation", false, "do not keep the raw bibliographic record in results")
	renameCmd.Flags().Int("max-length-filename", 0, "maximum length of a generated filename (default 250)")
	renameCmd.Flags().Int("max-length-authors", 0, "maximum length of the author portion of a filename (default 80)")
	renameCmd.Flags().Int("max-pages", 0, "number of PDF pages scanned for an identifier (default 5)")
	renameCmd.Flags().Bool("set-default", false, "save the effective settings as defaults for future runs")

	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	target := args[0]

	renameCfg, err := renameConfig(cmd)
	if err != nil {
		return err
	}
	resolverCfg := resolverConfig(cmd)

	if setDefault, _ := cmd.Flags().GetBool("set-default"); setDefault {
		dir, err := configDir()
		if err != nil {
			return err
		}
		cfgPath := filepath.Join(dir, "pdf-renamer.yaml")
		if err := writeDefaults(cfgPath, renameCfg); err != nil {
			return fmt.Errorf("saving default settings: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Saved default settings to", cfgPath)
	}

	builder, err := newBuilder(renameCfg)
	if err != nil {
		return err
	}

	resolver := resolve.NewService(resolverCfg)
	defer resolver.Close()

	w := progressWriter(cmd)

	results, err := renamer.Walk(cmd.Context(), resolver, builder, target, renameCfg, w)
	if err != nil {
		return err
	}

	baseDir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		baseDir = filepath.Dir(target)
	}
	renamer.WriteTextReport(os.Stdout, results, baseDir)

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		f, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close()
		if err := renamer.WriteYAMLReport(f, results); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	summary := renamer.Summarize(results)
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed processing", summary.Failed)
	}
	return nil
}

// renameConfig assembles the walker configuration: flags win over
// config-file values, which win over defaults.
func renameConfig(cmd *cobra.Command) (types.RenameConfig, error) {
	cfg := types.RenameConfig{
		Format:            stringSetting(cmd, "format", defaultFormat),
		Recurse:           boolSetting(cmd, "subfolders"),
		Workers:           intSetting(cmd, "workers", 1),
		MaxLengthFilename: intSetting(cmd, "max-length-filename", 0),
		MaxLengthAuthors:  intSetting(cmd, "max-length-authors", 0),
	}
	cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")

	if _, err := format.CheckFormat(cfg.Format); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolverConfig assembles the resolver configuration. The resolution
// cache lives next to the user config; a config directory that cannot
// be created just disables caching.
func resolverConfig(cmd *cobra.Command) types.ResolverConfig {
	cfg := types.ResolverConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		WebValidation: true,
		RateLimit:     viper.GetFloat64("rate_limit"),
		MaxPages:      intSetting(cmd, "max-pages", 0),
	}
	if noValidation, _ := cmd.Flags().GetBool("no-web-validation"); noValidation {
		cfg.WebValidation = false
	}
	if t := viper.GetDuration("timeout"); t > 0 {
		cfg.Timeout = t
	}
	if dir, err := configDir(); err == nil {
		cfg.CachePath = filepath.Join(dir, "resolutions.db")
	}
	return cfg
}

// newBuilder loads the journal abbreviation table and constructs the
// filename builder for the configured format.
func newBuilder(cfg types.RenameConfig) (*format.Builder, error) {
	table, err := format.LoadAbbreviations(userAbbreviationsPath())
	if err != nil {
		return nil, err
	}
	return format.NewBuilder(cfg.Format, format.Options{
		MaxLengthFilename: cfg.MaxLengthFilename,
		MaxLengthAuthors:  cfg.MaxLengthAuthors,
		Abbreviations:     table,
	})
}

// writeDefaults persists the effective rename settings as the config
// file read on future runs. Keys match the flag names so the
// flag/config/default precedence keeps working.
func writeDefaults(path string, cfg types.RenameConfig) error {
	v := viper.New()
	v.Set("format", cfg.Format)
	v.Set("subfolders", cfg.Recurse)
	v.Set("workers", cfg.Workers)
	v.Set("max-length-filename", cfg.MaxLengthFilename)
	v.Set("max-length-authors", cfg.MaxLengthAuthors)
	return v.WriteConfigAs(path)
}

// stringSetting resolves a string option: an explicitly set flag wins,
// then the viper key of the same name, then the fallback.
func stringSetting(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	if v := viper.GetString(name); v != "" {
		return v
	}
	return fallback
}

func intSetting(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	if viper.IsSet(name) {
		return viper.GetInt(name)
	}
	return fallback
}

func boolSetting(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return viper.GetBool(name)
}

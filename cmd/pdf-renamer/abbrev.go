package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-renamer/internal/format"
)

var abbrevCmd = &cobra.Command{
	Use:   "abbrev",
	Short: "Manage the journal abbreviation table used by {Jabbr}",
}

var abbrevAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Add journal abbreviations from a file",
	Long: `Add merges the abbreviations in file into the user abbreviation table.
Each line must have the form "FULL JOURNAL NAME = ABBREVIATION". New entries
take precedence over existing ones for the same journal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := format.AddAbbreviations(args[0], userAbbreviationsPath()); err != nil {
			return err
		}
		fmt.Println("Abbreviations added.")
		return nil
	},
}

var abbrevListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the abbreviation table, user entries included",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := format.LoadAbbreviations(userAbbreviationsPath())
		if err != nil {
			return err
		}
		journals := make([]string, 0, len(table))
		for j := range table {
			journals = append(journals, j)
		}
		sort.Strings(journals)
		for _, j := range journals {
			fmt.Printf("%s = %s\n", j, table[j])
		}
		return nil
	},
}

// userAbbreviationsPath locates the user abbreviation file. An empty
// return means no user file is available and only built-in entries
// apply.
func userAbbreviationsPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "abbreviations.txt")
}

func init() {
	abbrevCmd.AddCommand(abbrevAddCmd)
	abbrevCmd.AddCommand(abbrevListCmd)
	rootCmd.AddCommand(abbrevCmd)
}

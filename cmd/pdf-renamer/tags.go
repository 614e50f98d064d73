package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-renamer/internal/format"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags accepted in filename format templates",
	Run: func(cmd *cobra.Command, args []string) {
		tags := make([]string, 0, len(format.AllowedTags))
		for tag := range format.AllowedTags {
			tags = append(tags, string(tag))
		}
		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Printf("%-10s %s\n", tag, format.AllowedTags[format.Tag(tag)])
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

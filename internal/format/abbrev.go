// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"os"
	"strings"
)

// builtinAbbreviations covers common physics and general-science
// journals. User-defined entries loaded from the abbreviations file
// take precedence. Keys are lowercased full journal names.
var builtinAbbreviations = map[string]string{
	"physical review letters":                    "Phys. Rev. Lett.",
	"physical review a":                          "Phys. Rev. A",
	"physical review b":                          "Phys. Rev. B",
	"physical review e":                          "Phys. Rev. E",
	"physical review x":                          "Phys. Rev. X",
	"applied physics letters":                    "Appl. Phys. Lett.",
	"journal of applied physics":                 "J. Appl. Phys.",
	"nature communications":                      "Nat. Commun.",
	"nature physics":                             "Nat. Phys.",
	"nature photonics":                           "Nat. Photonics",
	"science advances":                           "Sci. Adv.",
	"optics express":                             "Opt. Express",
	"optics letters":                             "Opt. Lett.",
	"journal of the american chemical society":   "J. Am. Chem. Soc.",
	"journal of chemical physics":                "J. Chem. Phys.",
	"proceedings of the national academy of sciences": "Proc. Natl. Acad. Sci.",
	"new journal of physics":                     "New J. Phys.",
	"review of scientific instruments":           "Rev. Sci. Instrum.",
	"reviews of modern physics":                  "Rev. Mod. Phys.",
}

// LoadAbbreviations returns the journal abbreviation table: built-in
// entries merged with the user file at path, user entries winning. A
// missing user file is not an error. Each line of the file must have
// the form "FULL NAME = ABBREVIATION"; blank lines and lines starting
// with '#' are skipped, malformed lines are ignored. Within the file
// the first entry for a journal wins, which is why AddAbbreviations
// prepends.
func LoadAbbreviations(path string) (map[string]string, error) {
	table := make(map[string]string)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading abbreviations file %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			full, abbr, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			full = strings.ToLower(strings.TrimSpace(full))
			abbr = strings.TrimSpace(abbr)
			if full == "" || abbr == "" {
				continue
			}
			if _, seen := table[full]; !seen {
				table[full] = abbr
			}
		}
	}

	for k, v := range builtinAbbreviations {
		if _, seen := table[k]; !seen {
			table[k] = v
		}
	}
	return table, nil
}

// AddAbbreviations prepends the content of srcPath to the user
// abbreviations file at userPath, so newer entries shadow older ones on
// load. The user file is created if it does not exist yet.
func AddAbbreviations(srcPath, userPath string) error {
	newEntries, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	existing, err := os.ReadFile(userPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", userPath, err)
	}

	var b strings.Builder
	b.Write(newEntries)
	if len(newEntries) > 0 && !strings.HasSuffix(string(newEntries), "\n") {
		b.WriteString("\n")
	}
	b.Write(existing)

	if err := os.WriteFile(userPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", userPath, err)
	}
	return nil
}

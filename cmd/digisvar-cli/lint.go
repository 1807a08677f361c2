package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mediekroken/digisvar/internal/assistant"
	"github.com/mediekroken/digisvar/internal/knowledge"
)

var lintPath string

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate a knowledge base file",
	Long: `Lint loads a knowledge base and reports schema violations plus
quality warnings: empty alternate phrasings, unknown topic tags, and
answers that normalize to nothing.`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringVar(&lintPath, "file", "", "knowledge base path (default: config knowledge.path)")
}

// knownTags are the tags the matchers give meaning to.
var knownTags = map[string]bool{
	"video": true, "vhs": true, "video8": true, "hi8": true, "minidv": true, "videokassett": true,
	"smalfilm": true, "super8": true, "8mm": true, "16mm": true, "dobbel8": true,
	"foto": true, "bilde": true, "dias": true, "lysbilde": true, "negativ": true,
	"pris": true, "levering": true, "generelt": true,
}

type lintWarning struct {
	EntryID string `json:"entryId"`
	Message string `json:"message"`
}

func runLint(cmd *cobra.Command, args []string) error {
	path := lintPath
	if path == "" {
		path = cfg.Knowledge.Path
	}

	kb, err := knowledge.Load(path)
	if err != nil {
		return fmt.Errorf("knowledge base is invalid: %w", err)
	}

	bar := progressbar.NewOptions(len(kb.FAQ),
		progressbar.OptionSetDescription("Linting entries"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	var warnings []lintWarning
	for _, entry := range kb.FAQ {
		warnings = append(warnings, lintEntry(entry)...)
		bar.Add(1)
	}

	if outputJSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"path":     path,
			"entries":  len(kb.FAQ),
			"warnings": warnings,
		})
	}

	fmt.Printf("%d entries checked\n", len(kb.FAQ))
	if len(warnings) == 0 {
		color.Green("No warnings")
		return nil
	}

	yellow := color.New(color.FgYellow)
	for _, w := range warnings {
		yellow.Printf("%s: %s\n", w.EntryID, w.Message)
	}
	return nil
}

func lintEntry(entry knowledge.FaqEntry) []lintWarning {
	var warnings []lintWarning

	if assistant.Normalize(entry.Question) == "" {
		warnings = append(warnings, lintWarning{entry.ID, "question normalizes to nothing"})
	}

	for i, alt := range entry.Alternates {
		if strings.TrimSpace(alt) == "" {
			warnings = append(warnings, lintWarning{entry.ID, fmt.Sprintf("alternate %d is empty", i)})
		}
	}

	for _, tag := range entry.Tags {
		if !knownTags[tag] {
			warnings = append(warnings, lintWarning{entry.ID, fmt.Sprintf("unknown tag %q", tag)})
		}
	}

	if entry.SourceLabel == "" {
		warnings = append(warnings, lintWarning{entry.ID, "no source label"})
	}

	return warnings
}

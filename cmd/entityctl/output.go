package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	nameColor = color.New(color.FgCyan)
	dimColor  = color.New(color.Faint)
)

type suggestionRow struct {
	SourceID   uuid.UUID `json:"source_id"`
	SourceName string    `json:"source_name"`
	TargetID   uuid.UUID `json:"target_id"`
	TargetName string    `json:"target_name"`
	Type       string    `json:"type"`
	Similarity float64   `json:"similarity"`
}

func suggestionRows(suggestions []resolver.MergeSuggestion) []suggestionRow {
	rows := make([]suggestionRow, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, suggestionRow{
			SourceID:   s.Source.ID,
			SourceName: s.Source.Name,
			TargetID:   s.Target.ID,
			TargetName: s.Target.Name,
			Type:       s.Source.TypeSlug,
			Similarity: s.Similarity,
		})
	}
	return rows
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printOK(w io.Writer, format string, args ...interface{}) {
	okColor.Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", args...)
}

func printClassification(w io.Writer, name, slug string) {
	nameColor.Fprint(w, name)
	fmt.Fprint(w, " → ")
	okColor.Fprintln(w, slug)
}

func printSuggestions(w io.Writer, suggestions []resolver.MergeSuggestion) {
	if len(suggestions) == 0 {
		warnColor.Fprintln(w, "No merge suggestions")
		return
	}
	for _, row := range suggestionRows(suggestions) {
		fmt.Fprintf(w, "%.2f  ", row.Similarity)
		nameColor.Fprint(w, row.SourceName)
		fmt.Fprint(w, " → ")
		nameColor.Fprint(w, row.TargetName)
		dimColor.Fprintf(w, "  [%s] %s %s\n", row.Type, row.SourceID, row.TargetID)
	}
	fmt.Fprintf(w, "%d suggestion(s)\n", len(suggestions))
}

func printMerge(w io.Writer, merged bool, sourceID, targetID uuid.UUID) {
	if merged {
		printOK(w, "merged %s into %s", sourceID, targetID)
		return
	}
	warnColor.Fprintf(w, "✗ merge of %s into %s rejected (missing or identical entities)\n", sourceID, targetID)
}

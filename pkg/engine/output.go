package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/registry"
	"github.com/wildfunctions/fourfours/pkg/search"
)

// columns measures display width. Ambiguous-width glyphs such as √ and ⌊
// count as one column regardless of locale.
var columns = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// TargetResult is the outcome for one target.
type TargetResult struct {
	Target     int              `json:"target"`
	Found      bool             `json:"found"`
	Expression string           `json:"expression,omitempty"`
	LaTeX      string           `json:"latex,omitempty"`
	Path       []catalog.Action `json:"path,omitempty"`
	Value      float64          `json:"value"`
}

// FinalReport summarizes the entire run.
type FinalReport struct {
	RunID     string         `json:"run_id"`
	Config    Config         `json:"config"`
	Found     int            `json:"found"`
	Total     int            `json:"total"`
	Results   []TargetResult `json:"results"`
	Stats     search.Stats   `json:"stats"`
	Accepted  int64          `json:"accepted"`
	ElapsedMS int64          `json:"elapsed_ms"`
}

// WriteProgress writes one accepted registry update, e.g.
// "[4 4 + 4 - 4 +] 4+4-4+4 = 8 (found 12/101)".
func WriteProgress(w io.Writer, u registry.Update) {
	fmt.Fprintf(w, "%s %s = %d (found %d/%d)\n",
		catalog.FormatPath(u.Slot.Path), u.Slot.Expression, u.Slot.Target, u.Found, u.Total)
}

// targetWidth is the widest target label in the report.
func targetWidth(r FinalReport) int {
	w := 1
	for _, t := range r.Results {
		if n := len(strconv.Itoa(t.Target)); n > w {
			w = n
		}
	}
	return w
}

// WriteTextFinal writes one line per target followed by the summary line.
func WriteTextFinal(w io.Writer, r FinalReport) {
	width := targetWidth(r)
	for _, t := range r.Results {
		if t.Found {
			fmt.Fprintf(w, "%*d = %s\n", width, t.Target, t.Expression)
		} else {
			fmt.Fprintf(w, "%*d = not found\n", width, t.Target)
		}
	}
	fmt.Fprintf(w, "Found %d of [%d,%d]\n", r.Found, r.Config.TargetMin, r.Config.TargetMax)
}

// WriteTableFinal writes the text report with the action paths in an aligned
// second column. Expressions are padded by display width.
func WriteTableFinal(w io.Writer, r FinalReport) {
	width := targetWidth(r)
	exprWidth := len("not found")
	for _, t := range r.Results {
		if n := columns.StringWidth(t.Expression); n > exprWidth {
			exprWidth = n
		}
	}
	for _, t := range r.Results {
		if !t.Found {
			fmt.Fprintf(w, "%*d = not found\n", width, t.Target)
			continue
		}
		fmt.Fprintf(w, "%*d = %s  %s\n", width, t.Target,
			columns.FillRight(t.Expression, exprWidth), catalog.FormatPath(t.Path))
	}
	fmt.Fprintf(w, "Found %d of [%d,%d]\n", r.Found, r.Config.TargetMin, r.Config.TargetMax)
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r FinalReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFinal dispatches on the configured format.
func WriteFinal(w io.Writer, r FinalReport) error {
	switch r.Config.Format {
	case "json":
		return WriteJSONFinal(w, r)
	case "table":
		WriteTableFinal(w, r)
	default:
		WriteTextFinal(w, r)
	}
	return nil
}

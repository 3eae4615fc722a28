package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/caesar/internal/analysis"
	"github.com/verte-zerg/caesar/internal/model"
)

// DefaultPreviewWidth is the number of cells shown per candidate in the list.
const DefaultPreviewWidth = 60

const ellipsis = "..."

// Preview flattens text to one line and truncates it to width display cells.
func Preview(text string, width int) string {
	line := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(text)
	if width <= len(ellipsis) {
		width = DefaultPreviewWidth
	}
	if runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, ellipsis)
}

// RankedLines formats each candidate as "NN. Key KK | score=SSS | preview".
func RankedLines(ranked analysis.Ranked, previewWidth int) []string {
	lines := make([]string, 0, len(ranked))
	for i, c := range ranked {
		lines = append(lines, fmt.Sprintf("%2d. Key %2d | score=%3d | %s", i+1, c.Key, c.Score, Preview(c.Text, previewWidth)))
	}
	return lines
}

// RenderRanked writes the ranked list to w.
func RenderRanked(w io.Writer, ranked analysis.Ranked, previewWidth int) error {
	for _, line := range RankedLines(ranked, previewWidth) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory writes recorded runs as a table.
func RenderHistory(w io.Writer, runs []model.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	headers := []string{"ID", "When", "Mode", "Key", "Chars", "Best Key", "Best Score"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		key, bestKey, bestScore := "-", "-", "-"
		if r.Mode == model.ModeBrute {
			bestKey = strconv.Itoa(r.BestKey)
			bestScore = strconv.Itoa(r.BestScore)
		} else {
			key = strconv.Itoa(r.Key)
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Mode,
			key,
			strconv.Itoa(r.InputChars),
			bestKey,
			bestScore,
		})
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range FormatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

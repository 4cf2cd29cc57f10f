package processor

import (
	"fmt"
	"os"
	"strings"

	"github.com/jlowell/chordshift/theory"
)

// AnalysisReport renders the session as plain text: every chord with
// its name, timing and notes, the original state for transformed
// chords, the detected key and any recognized progressions.
func (p *Processor) AnalysisReport() string {
	var b strings.Builder

	b.WriteString("Chord Analysis Report\n")
	b.WriteString("=====================\n")
	fmt.Fprintf(&b, "File hash: %v\n", p.fileHash)

	if k := p.DetectKey(); k != nil {
		mode := "major"
		if !k.IsMajor {
			mode = "minor"
		}
		fmt.Fprintf(&b, "Detected key: %v %v\n", k.RootNote, mode)
		for _, sc := range p.ScaleConstraints() {
			fmt.Fprintf(&b, "  %v scale, chords: %v\n", sc.ScaleType, strings.Join(sc.AllowedChords, ", "))
		}
	} else {
		b.WriteString("Detected key: none\n")
	}

	fmt.Fprintf(&b, "\nChords (%v):\n", len(p.chords))
	for i, c := range p.chords {
		fmt.Fprintf(&b, "%4d. %-12v start=%-8v dur=%-8v notes=[%v]\n",
			i, c.Name, c.StartTime, c.Duration, theory.FormatNotes(c.Notes))
		if c.Original != nil {
			fmt.Fprintf(&b, "      originally %v [%v]\n",
				c.Original.Name, theory.FormatNotes(c.Original.Notes))
		}
	}

	progressions := p.Progressions()
	if len(progressions) > 0 {
		b.WriteString("\nProgressions:\n")
		for _, pr := range progressions {
			fmt.Fprintf(&b, "  %v (confidence %.2f) chords %v\n",
				pr.Name, pr.Confidence, pr.ChordIndices)
		}
	}

	return b.String()
}

// SaveAnalysis writes the report to path. Nothing is written on
// failure.
func (p *Processor) SaveAnalysis(path string) error {
	return os.WriteFile(path, []byte(p.AnalysisReport()), 0644)
}

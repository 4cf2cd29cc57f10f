package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jlowell/chordshift/model"
	"github.com/jlowell/chordshift/processor"
	"github.com/jlowell/chordshift/theory"
	"github.com/jlowell/chordshift/util"
	"github.com/spf13/cobra"
)

var (
	transformChords     string
	transformTargets    string
	transformMode       string
	transformInversion  int
	transformPercentage float64
	transformNoVoicing  bool
	transformOut        string
)

func init() {
	transformCmd.Flags().StringVar(&transformChords, "chords", "", "comma-separated chord indices, e.g. 0,2,5")
	transformCmd.Flags().StringVar(&transformTargets, "targets", "", "comma-separated target chord names, one or one-per-index")
	transformCmd.Flags().StringVar(&transformMode, "mode", "standard", "standard, inversion, percentage or switch")
	transformCmd.Flags().IntVar(&transformInversion, "inversion", 0, "inversion count for inversion mode")
	transformCmd.Flags().Float64Var(&transformPercentage, "percentage", 100, "blend percentage for percentage mode")
	transformCmd.Flags().BoolVar(&transformNoVoicing, "no-voice-leading", false, "octave-align instead of voice leading")
	transformCmd.Flags().StringVar(&transformOut, "out", "", "output path (defaults to <file>_transformed.mid)")
	rootCmd.AddCommand(transformCmd)
}

var transformCmd = &cobra.Command{
	Use:   "transform <file>",
	Short: "Transforms selected chords",
	Long:  `Transforms selected chords and writes the re-encoded MIDI file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		transform(args[0])
	},
}

func parseIndices(s string) []int {
	var res []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			panic("Bad chord index: " + part)
		}
		res = append(res, n)
	}
	return res
}

func parseTargets(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}

func parseMode(s string) model.TransformationType {
	switch s {
	case "standard":
		return model.TransformStandard
	case "inversion":
		return model.TransformInversion
	case "percentage":
		return model.TransformPercentage
	case "switch":
		return model.TransformSwitchTonality
	default:
		panic("Unknown mode: " + s)
	}
}

func transform(path string) {
	indices := parseIndices(transformChords)
	if len(indices) == 0 {
		panic("Need at least one chord index...")
	}

	opts := model.NewTransformationOptions()
	opts.Type = parseMode(transformMode)
	opts.Inversion = transformInversion
	opts.Percentage = transformPercentage
	opts.UseVoiceLeading = !transformNoVoicing

	p := processor.New()
	if err := p.Load(util.ReadFileOrPanic(path)); err != nil {
		panic("Could not decode file: " + err.Error())
	}

	var err error
	if opts.Type == model.TransformSwitchTonality {
		err = p.SwitchTonality(indices)
	} else {
		err = p.TransformChords(indices, parseTargets(transformTargets), opts)
	}
	if err != nil {
		panic("Transformation failed: " + err.Error())
	}

	for _, index := range indices {
		c, _ := p.Chord(index)
		fmt.Printf("%4d. %v -> %v [%v]\n", index, c.Original.Name, c.Name, theory.FormatNotes(c.Notes))
	}

	data, err := p.Encode()
	if err != nil {
		panic("Encode failed: " + err.Error())
	}

	out := transformOut
	if out == "" {
		out = strings.TrimSuffix(strings.TrimSuffix(path, ".mid"), ".midi") + "_transformed.mid"
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		panic("Could not write output: " + err.Error())
	}
	fmt.Printf("Wrote: %v\n", out)
}

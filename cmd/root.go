package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chordshift",
	Short: "Chord analysis and transformation for MIDI files",
	Long:  `Detects chords, keys and progressions in MIDI files and rewrites chords with voice leading.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

package cmd

import (
	"fmt"

	"github.com/jlowell/chordshift/model"
	"github.com/jlowell/chordshift/substitution"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(substitutionsCmd)
}

var substitutionsCmd = &cobra.Command{
	Use:   "substitutions <chord>",
	Short: "Lists substitutions for a chord",
	Long:  `Lists substitutions for a chord name, grouped by family`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		printSubstitutions(args[0])
	},
}

func printGroup(title string, subs []model.ChordSubstitution) {
	if len(subs) == 0 {
		return
	}
	fmt.Printf("%v:\n", title)
	for _, s := range subs {
		fmt.Printf("  %v -> %v (%v, tension %+.1f, similarity %v)\n",
			s.OriginalChord, s.SubstituteChord, s.Relationship, s.TensionChange, s.FunctionalSimilarity)
	}
}

func printSubstitutions(chordName string) {
	options := substitution.NewEngine().Options(chordName)
	printGroup("Common", options.CommonSubs)
	printGroup("Jazz", options.JazzSubs)
	printGroup("Modal", options.ModalSubs)
	printGroup("Reharmonizations", options.Reharmonizations)
}

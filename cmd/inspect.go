package cmd

import (
	"fmt"

	"github.com/jlowell/chordshift/midifile"
	"github.com/jlowell/chordshift/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspects a MIDI file",
	Long:  `Inspects a MIDI file's decoded header and events`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	f, err := midifile.Decode(util.ReadFileOrPanic(path))
	if err != nil {
		panic("Could not decode: " + err.Error())
	}

	fmt.Printf("format: %v\n", f.Format)
	fmt.Printf("division: %v\n", f.Division)
	fmt.Printf("tracks: %v\n", f.NumTracks())

	for i, track := range f.Tracks {
		fmt.Printf("track %v (%v events)", i, len(track.Events))
		if track.Name != "" {
			fmt.Printf(" name: %v", track.Name)
		}
		fmt.Println()

		var now uint32
		for _, ev := range track.Events {
			now += ev.DeltaTime
			if ev.IsMeta {
				fmt.Printf("  t=%-8v meta 0x%02X len=%v\n", now, ev.MetaType, len(ev.Data))
			} else {
				fmt.Printf("  t=%-8v status 0x%02X data=%v\n", now, ev.Status, ev.Data)
			}
		}
	}
}

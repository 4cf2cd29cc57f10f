package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jlowell/chordshift/constants"
	"github.com/jlowell/chordshift/db"
	"github.com/jlowell/chordshift/processor"
	"github.com/jlowell/chordshift/theory"
	"github.com/jlowell/chordshift/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file-or-dir> [maxNum]",
	Short: "Analyzes chords in MIDI files",
	Long:  `Analyzes chords in MIDI files and writes a plain-text report next to each file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			panic("Need a file or directory...")
		}
		var maxNum int
		if len(args) == 2 {
			arg1, err := strconv.Atoi(args[1])
			if err != nil {
				panic(err)
			}
			maxNum = arg1
		}
		Analyze(args[0], maxNum)
	},
}

func gatherPaths(path string, maxNum int) []string {
	info, err := os.Stat(path)
	if err != nil {
		panic("Couldn't stat path: " + err.Error())
	}
	if info.IsDir() {
		return util.GatherAllMidiPaths(path, maxNum)
	}
	return []string{path}
}

func Analyze(path string, maxNum int) {
	cache := processor.OpenCache(constants.GetCacheDir(), constants.AnalysisCacheFile)
	paths := gatherPaths(path, maxNum)

	var hashes []string
	for _, p := range paths {
		hashes = append(hashes, analyzeOne(p, cache))
	}
	cache.Flush()

	if db.Enabled() {
		printMetadatas(hashes)
	}
}

func analyzeOne(path string, cache *processor.Cache) string {
	fmt.Printf("Analyzing: %v\n", path)

	p := processor.NewWithCache(cache)
	if err := p.Load(util.ReadFileOrPanic(path)); err != nil {
		fmt.Printf("Could not decode %v: %v\n", path, err)
		return ""
	}

	fmt.Printf("Found %v chords\n", p.NumChords())
	for i, c := range p.Chords() {
		fmt.Printf("%4d. %-12v [%v]\n", i, c.Name, theory.FormatNotes(c.Notes))
	}

	if k := p.DetectKey(); k != nil {
		mode := "major"
		if !k.IsMajor {
			mode = "minor"
		}
		fmt.Printf("Key: %v %v\n", k.RootNote, mode)
	}
	for _, pr := range p.Progressions() {
		fmt.Printf("Progression: %v (%.2f)\n", pr.Name, pr.Confidence)
	}

	reportPath := path + constants.ReportSuffix
	if err := p.SaveAnalysis(reportPath); err != nil {
		fmt.Printf("Could not write report %v: %v\n", reportPath, err)
	}
	return p.FileHashString()
}

// printMetadatas resolves the optional metadata sidecar, batched to
// the lookup's limit of 10 keys.
func printMetadatas(hashes []string) {
	hashes = filterEmpty(hashes)
	for start := 0; start < len(hashes); start += 10 {
		end := util.Min(start+10, len(hashes))
		for hash, meta := range db.GetFileMetadatas(hashes[start:end]) {
			fmt.Printf("%v: %v - %v (%v, %v)\n", hash, meta.Artist, meta.Title, meta.Release, meta.Year)
		}
	}
}

func filterEmpty(strs []string) []string {
	var res []string
	for _, s := range strs {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

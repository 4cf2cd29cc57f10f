package main

import "github.com/jlowell/chordshift/cmd"

func main() {
	cmd.Execute()
}

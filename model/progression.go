package model

type ProgressionPattern struct {
	Name           string
	ChordQualities []string
	CommonKeys     []string
}

type ChordProgression struct {
	Name         string
	Confidence   float64
	ChordIndices []int
}

type ChordSubstitution struct {
	OriginalChord        string
	SubstituteChord      string
	Relationship         string
	TensionChange        float32
	FunctionalSimilarity int
}

type SubstitutionOptions struct {
	CommonSubs       []ChordSubstitution
	JazzSubs         []ChordSubstitution
	ModalSubs        []ChordSubstitution
	Reharmonizations []ChordSubstitution
}

package model

// Request/response bodies for the serve command.

type AnalyzeRequestBody struct {
	// Standard base64 of the raw event-file bytes.
	Data string `json:"data"`
}

type ChordInfo struct {
	Index         int     `json:"index"`
	Name          string  `json:"name"`
	StartTime     uint32  `json:"start_time"`
	Duration      uint32  `json:"duration"`
	Notes         []uint8 `json:"notes"`
	OriginalName  string  `json:"original_name,omitempty"`
	OriginalNotes []uint8 `json:"original_notes,omitempty"`
}

type KeyInfo struct {
	Root    string `json:"root"`
	IsMajor bool   `json:"is_major"`
}

type ProgressionInfo struct {
	Name         string  `json:"name"`
	Confidence   float64 `json:"confidence"`
	ChordIndices []int   `json:"chord_indices"`
}

type AnalyzeResponse struct {
	FileHash     string            `json:"file_hash"`
	NumChords    int               `json:"num_chords"`
	Chords       []ChordInfo       `json:"chords"`
	Key          *KeyInfo          `json:"key"`
	Progressions []ProgressionInfo `json:"progressions"`
	Metadata     *FileMetadata     `json:"metadata,omitempty"`
}

type TransformRequestBody struct {
	Data         string   `json:"data"`
	ChordIndices []int    `json:"chord_indices"`
	Targets      []string `json:"targets"`
	Mode         string   `json:"mode"`
	Inversion    int      `json:"inversion"`
	Percentage   float64  `json:"percentage"`
}

type TransformResponse struct {
	Data   string      `json:"data"`
	Chords []ChordInfo `json:"chords"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

package model

// FileMetadata is the optional sidecar record looked up by file hash.
type FileMetadata struct {
	Artist  string `json:"artist"`
	Release string `json:"release"`
	Title   string `json:"title"`
	Year    uint   `json:"year,omitempty"`
}

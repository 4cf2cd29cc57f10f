package constants

import "os"

func GetCacheDir() string {
	path := os.Getenv("CACHE_PATH")
	if path != "" {
		return path
	}
	return "./cache"
}

// GetMetadataEndpoint returns the DynamoDB endpoint for the optional
// metadata sidecar, or "" when the lookup is disabled.
func GetMetadataEndpoint() string {
	return os.Getenv("METADATA_ENDPOINT")
}

const MetadataTable = "chordshift-metadata"

const AnalysisCacheFile = "analysis.bin"

const ReportSuffix = "_analysis.txt"

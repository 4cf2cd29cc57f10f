package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bep/debounce"
	"github.com/gorilla/mux"
	"github.com/jlowell/chordshift/constants"
	"github.com/jlowell/chordshift/db"
	"github.com/jlowell/chordshift/model"
	"github.com/jlowell/chordshift/processor"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveCache *processor.Cache

// flushDebounced coalesces cache writes across bursts of requests.
var flushDebounced func(f func())

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `serves the analyze/transform HTTP API`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func LoadServeFiles() {
	serveCache = processor.OpenCache(constants.GetCacheDir(), constants.AnalysisCacheFile)
	flushDebounced = debounce.New(5 * time.Second)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}

func loadFromRequest(w http.ResponseWriter, data string) *processor.Processor {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		writeError(w, 400, "Could not decode base64 data: "+err.Error())
		return nil
	}

	p := processor.NewWithCache(serveCache)
	if err := p.Load(raw); err != nil {
		writeError(w, 400, "Could not decode file: "+err.Error())
		return nil
	}
	flushDebounced(serveCache.Flush)
	return p
}

func chordInfos(p *processor.Processor) []model.ChordInfo {
	res := make([]model.ChordInfo, 0)
	for i, c := range p.Chords() {
		info := model.ChordInfo{
			Index:     i,
			Name:      c.Name,
			StartTime: c.StartTime,
			Duration:  c.Duration,
			Notes:     c.Notes,
		}
		if c.Original != nil {
			info.OriginalName = c.Original.Name
			info.OriginalNotes = c.Original.Notes
		}
		res = append(res, info)
	}
	return res
}

func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "Could not read request body")
		return
	}

	var input model.AnalyzeRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, 400, "Could not unmarshal request body: "+err.Error())
		return
	}

	p := loadFromRequest(w, input.Data)
	if p == nil {
		return
	}

	res := model.AnalyzeResponse{
		FileHash:  p.FileHashString(),
		NumChords: p.NumChords(),
		Chords:    chordInfos(p),
	}
	if k := p.DetectKey(); k != nil {
		res.Key = &model.KeyInfo{Root: k.RootNote, IsMajor: k.IsMajor}
	}
	for _, pr := range p.Progressions() {
		res.Progressions = append(res.Progressions, model.ProgressionInfo{
			Name:         pr.Name,
			Confidence:   pr.Confidence,
			ChordIndices: pr.ChordIndices,
		})
	}
	if db.Enabled() {
		if meta, ok := db.GetFileMetadatas([]string{res.FileHash})[res.FileHash]; ok {
			res.Metadata = &meta
		}
	}

	json.NewEncoder(w).Encode(res)
}

func parseRequestMode(mode string) (model.TransformationType, error) {
	switch mode {
	case "", "standard":
		return model.TransformStandard, nil
	case "inversion":
		return model.TransformInversion, nil
	case "percentage":
		return model.TransformPercentage, nil
	case "switch":
		return model.TransformSwitchTonality, nil
	default:
		return 0, fmt.Errorf("unknown mode: %v", mode)
	}
}

func HandleTransform(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "Could not read request body")
		return
	}

	var input model.TransformRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, 400, "Could not unmarshal request body: "+err.Error())
		return
	}

	mode, err := parseRequestMode(input.Mode)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	p := loadFromRequest(w, input.Data)
	if p == nil {
		return
	}

	opts := model.NewTransformationOptions()
	opts.Type = mode
	opts.Inversion = input.Inversion
	if input.Percentage > 0 {
		opts.Percentage = input.Percentage
	}

	if mode == model.TransformSwitchTonality {
		err = p.SwitchTonality(input.ChordIndices)
	} else {
		err = p.TransformChords(input.ChordIndices, input.Targets, opts)
	}
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	data, err := p.Encode()
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}

	json.NewEncoder(w).Encode(model.TransformResponse{
		Data:   base64.StdEncoding.EncodeToString(data),
		Chords: chordInfos(p),
	})
}

func serve() {
	LoadServeFiles()

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	router.HandleFunc("/transform", HandleTransform).Methods("POST")
	log.Fatal(http.ListenAndServe(":8080", cors.Default().Handler(router)))
}

package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/FocuswithJustin/Koine/core/errors"
	"github.com/FocuswithJustin/Koine/core/morph"
	verseref "github.com/FocuswithJustin/Koine/core/ref"
	"github.com/FocuswithJustin/Koine/core/strongs"
	"github.com/FocuswithJustin/Koine/internal/dataset"
	"github.com/FocuswithJustin/Koine/internal/logging"
)

// Version is the API version reported by the root and health endpoints.
const Version = "0.1.0"

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// LexiconEntry is the response body for a lexicon lookup.
type LexiconEntry struct {
	Number     string `json:"number"`
	Definition string `json:"definition"`
}

// MorphResult is the response body for a morphology parse.
type MorphResult struct {
	Code       string           `json:"code"`
	Morphology morph.Morphology `json:"morphology"`
}

// NormalizeResult is the response body for the normalization endpoints.
type NormalizeResult struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	Uptime         string `json:"uptime"`
	Verses         int    `json:"verses"`
	LexiconEntries int    `json:"lexicon_entries"`
}

var startTime = time.Now()

// activeStore is the dataset served by the running server. Set once by
// Start (or by tests) before any request arrives, read-only afterwards.
var activeStore dataset.Store

func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"name":    "Koine API",
		"version": Version,
		"endpoints": []string{
			"GET /health",
			"GET /verses",
			"GET /verses/:ref",
			"GET /lexicon/:number",
			"GET /morph/:code",
			"GET /normalize/reference?q=",
			"GET /normalize/strongs?q=",
			"POST /jobs",
			"GET /jobs/:id",
			"DELETE /jobs/:id",
			"WS /ws",
		},
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	verses, lexicon := activeStore.Counts()
	respond(w, http.StatusOK, HealthInfo{
		Status:         "healthy",
		Version:        Version,
		Uptime:         time.Since(startTime).String(),
		Verses:         verses,
		LexiconEntries: lexicon,
	})
}

// handleVerses handles GET /verses - list all canonical references.
func handleVerses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	refs := activeStore.Refs()
	respondWithTotal(w, http.StatusOK, refs, len(refs))
}

// handleVerseByRef handles GET /verses/{ref}. The reference is accepted
// in any form the normalizer understands.
func handleVerseByRef(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/verses/")
	canonical, err := verseref.Normalize(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REFERENCE",
			"Not a recognizable verse reference: "+raw)
		return
	}

	rec, err := activeStore.Verse(canonical)
	if err != nil {
		logging.LookupMiss("verse", canonical)
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Verse not found: "+canonical)
		return
	}
	respond(w, http.StatusOK, rec)
}

// handleLexiconByNumber handles GET /lexicon/{number}.
func handleLexiconByNumber(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/lexicon/")
	number, err := strongs.Normalize(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_STRONGS",
			"Not a valid Strong's number: "+raw)
		return
	}

	def, err := activeStore.LexiconEntry(number)
	if err != nil {
		logging.LookupMiss("lexicon", number)
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Lexicon entry not found: "+number)
		return
	}
	respond(w, http.StatusOK, LexiconEntry{Number: number, Definition: def})
}

// handleMorph handles GET /morph/{code}.
func handleMorph(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/morph/")
	m, err := morph.Parse(code)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_CODE",
			"Not a recognizable morphological code: "+code)
		return
	}
	respond(w, http.StatusOK, MorphResult{
		Code:       strings.ToUpper(strings.TrimSpace(code)),
		Morphology: m,
	})
}

// handleNormalizeReference handles GET /normalize/reference?q=.
func handleNormalizeReference(w http.ResponseWriter, r *http.Request) {
	handleNormalize(w, r, "INVALID_REFERENCE", verseref.Normalize)
}

// handleNormalizeStrongs handles GET /normalize/strongs?q=.
func handleNormalizeStrongs(w http.ResponseWriter, r *http.Request) {
	handleNormalize(w, r, "INVALID_STRONGS", strongs.Normalize)
}

func handleNormalize(w http.ResponseWriter, r *http.Request, errCode string, normalize func(string) (string, error)) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	input := r.URL.Query().Get("q")
	if input == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMS", "Query parameter q is required")
		return
	}

	normalized, err := normalize(input)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidReference) || errors.Is(err, errors.ErrInvalidStrongs) {
			respondError(w, http.StatusBadRequest, errCode, "Cannot normalize: "+input)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	respond(w, http.StatusOK, NormalizeResult{Input: input, Normalized: normalized})
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondWithTotal(w http.ResponseWriter, status int, data interface{}, total int) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Total:     total,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"datasight/domain/dataset"
	apperrors "datasight/internal/errors"
)

// datasetRequest is the JSON body accepted by the dataset endpoints
type datasetRequest struct {
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"providers": s.pipeline.Providers(),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.usage.Summary())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ds, err := decodeDataset(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.pipeline.Run(r.Context(), ds)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ds, err := decodeDataset(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	prof, err := s.pipeline.Profile(ds)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": prof})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	ds, err := decodeDataset(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	prof, recs, err := s.pipeline.Recommend(ds)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile":         prof,
		"recommendations": recs,
	})
}

// handleUpload reads a multipart "file" field (CSV or XLSX) and runs the full pipeline
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		s.writeError(w, apperrors.ParseFailed("invalid multipart form", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, apperrors.InvalidInput("missing form field \"file\""))
		return
	}
	defer file.Close()

	ds, err := s.reader.ReadStream(file, header.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("[API] upload %s: %d rows, %d columns", header.Filename, ds.RowCount(), ds.ColumnCount())
	report, err := s.pipeline.Run(r.Context(), *ds)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// decodeDataset parses a JSON dataset and rejects ragged rows
func decodeDataset(w http.ResponseWriter, r *http.Request) (dataset.Dataset, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)

	var req datasetRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return dataset.Dataset{}, apperrors.ParseFailed("invalid JSON body", err)
	}
	if len(req.Headers) == 0 {
		return dataset.Dataset{}, apperrors.InvalidInput("headers must not be empty")
	}

	for i, row := range req.Rows {
		if len(row) != len(req.Headers) {
			return dataset.Dataset{}, apperrors.InvalidInput(
				fmt.Sprintf("row %d has %d cells, expected %d", i, len(row), len(req.Headers)))
		}
		for j, cell := range row {
			row[j] = normalizeCell(cell)
		}
	}
	return dataset.New(req.Headers, req.Rows), nil
}

// normalizeCell turns json.Number into float64 and rejects nested values
func normalizeCell(v any) any {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any, []any:
		raw, _ := json.Marshal(t)
		return string(raw)
	default:
		return v
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeInvalidInput, apperrors.CodeParseFailed:
		status = http.StatusBadRequest
	case apperrors.CodeUnsupportedFile:
		status = http.StatusUnsupportedMediaType
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("[API] request failed: %v", err)
	} else {
		s.logger.Debug("[API] rejected request: %v", err)
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  code,
	})
}

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edukita/educbt-studio/internal/bank"
	"github.com/edukita/educbt-studio/internal/export"
	"github.com/edukita/educbt-studio/internal/question"
)

func sendFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

func ExportJSONHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.Load(r.Context(), chi.URLParam(r, "workspaceID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data, err := export.WriteJSON(qs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sendFile(w, "application/json", "bank-soal.json", data)
	}
}

func ExportXLSXHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.Load(r.Context(), chi.URLParam(r, "workspaceID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data, err := export.WriteXLSX(qs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sendFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "bank-soal.xlsx", data)
	}
}

// ExportPaperHandler renders the naskah for active questions only; trashed
// ones never reach the printed paper.
func ExportPaperHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.Load(r.Context(), chi.URLParam(r, "workspaceID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		active, _ := question.Partition(qs)
		data, err := export.RenderPaper(active)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sendFile(w, "application/msword", "naskah-soal.doc", data)
	}
}

func ExportBlueprintHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.Load(r.Context(), chi.URLParam(r, "workspaceID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		active, _ := question.Partition(qs)
		data, err := export.RenderBlueprint(active)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sendFile(w, "application/msword", "kisi-kisi.doc", data)
	}
}

func uploadedFile(r *http.Request) ([]byte, error) {
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ImportJSONHandler merges one uploaded JSON file into the workspace. The
// file is validated before the store write, so a malformed upload changes
// nothing.
func ImportJSONHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := uploadedFile(r)
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		var probe []map[string]interface{}
		if err := json.Unmarshal(data, &probe); err != nil {
			http.Error(w, "invalid question JSON", http.StatusBadRequest)
			return
		}
		qs, err := store.Replace(r.Context(), chi.URLParam(r, "workspaceID"), "import", func(cur []question.Question) []question.Question {
			merged, merr := export.ReadJSON(data, cur)
			if merr != nil {
				return cur
			}
			return merged
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, qs)
	}
}

// ImportXLSXHandler merges one uploaded workbook, same contract as the
// spreadsheet template the xlsx export writes.
func ImportXLSXHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := uploadedFile(r)
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		if _, err := export.ReadXLSX(bytes.NewReader(data), nil); err != nil {
			http.Error(w, "invalid workbook: "+err.Error(), http.StatusBadRequest)
			return
		}
		qs, err := store.Replace(r.Context(), chi.URLParam(r, "workspaceID"), "import", func(cur []question.Question) []question.Question {
			merged, merr := export.ReadXLSX(bytes.NewReader(data), cur)
			if merr != nil {
				return cur
			}
			return merged
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, qs)
	}
}

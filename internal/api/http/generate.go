package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edukita/educbt-studio/internal/bank"
	"github.com/edukita/educbt-studio/internal/genai"
	"github.com/edukita/educbt-studio/internal/question"
)

func genStatus(err error) int {
	if errors.Is(err, genai.ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

// GenerateHandler runs one generation batch and appends the results after
// the current max order. The model call happens before the store write, so
// a failed call leaves the workspace untouched.
func GenerateHandler(store bank.Store, svc *genai.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg genai.GenerationConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		wsID := chi.URLParam(r, "workspaceID")
		cur, err := store.Load(r.Context(), wsID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		batch, err := svc.GenerateQuestions(r.Context(), cfg, question.MaxOrder(cur)+1)
		if err != nil {
			http.Error(w, "generation failed: "+err.Error(), genStatus(err))
			return
		}
		qs, err := store.Replace(r.Context(), wsID, "generate", func(cur []question.Question) []question.Question {
			out := append([]question.Question(nil), cur...)
			next := question.MaxOrder(cur)
			for i, q := range batch {
				q.Order = next + i + 1
				out = append(out, q)
			}
			return out
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, qs)
	}
}

// RegenerateHandler rewrites one question in place, keeping its id and
// order so references and numbering stay stable.
func RegenerateHandler(store bank.Store, svc *genai.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Instructions string `json:"instructions"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		wsID := chi.URLParam(r, "workspaceID")
		qid := chi.URLParam(r, "questionID")
		cur, err := store.Load(r.Context(), wsID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		var orig *question.Question
		for i := range cur {
			if cur[i].ID == qid {
				orig = &cur[i]
				break
			}
		}
		if orig == nil {
			http.Error(w, "question not found", http.StatusNotFound)
			return
		}
		fresh, err := svc.RegenerateQuestion(r.Context(), *orig, body.Instructions)
		if err != nil {
			http.Error(w, "regeneration failed: "+err.Error(), genStatus(err))
			return
		}
		qs, err := store.Replace(r.Context(), wsID, "regenerate", func(cur []question.Question) []question.Question {
			out := make([]question.Question, len(cur))
			for i, q := range cur {
				if q.ID == qid {
					out[i] = fresh
				} else {
					out[i] = q
				}
			}
			return out
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, qs)
	}
}

// RepairHandler sends the whole list to the model to backfill missing
// explanation, level and material fields.
func RepairHandler(store bank.Store, svc *genai.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wsID := chi.URLParam(r, "workspaceID")
		cur, err := store.Load(r.Context(), wsID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if len(cur) == 0 {
			writeJSON(w, []question.Question{})
			return
		}
		repaired, err := svc.RepairQuestions(r.Context(), cur)
		if err != nil {
			http.Error(w, "repair failed: "+err.Error(), genStatus(err))
			return
		}
		qs, err := store.Replace(r.Context(), wsID, "repair", func([]question.Question) []question.Question {
			return repaired
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, qs)
	}
}

func SuggestLevelHandler(svc *genai.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text    string   `json:"text"`
			Options []string `json:"options"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
			http.Error(w, "text required", http.StatusBadRequest)
			return
		}
		level, err := svc.SuggestLevel(r.Context(), body.Text, body.Options)
		if err != nil {
			http.Error(w, "suggestion failed: "+err.Error(), genStatus(err))
			return
		}
		writeJSON(w, map[string]string{"level": level})
	}
}

// ExplanationHandler writes a pembahasan for one question and stores it.
func ExplanationHandler(store bank.Store, svc *genai.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wsID := chi.URLParam(r, "workspaceID")
		qid := chi.URLParam(r, "questionID")
		cur, err := store.Load(r.Context(), wsID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		var orig *question.Question
		for i := range cur {
			if cur[i].ID == qid {
				orig = &cur[i]
				break
			}
		}
		if orig == nil {
			http.Error(w, "question not found", http.StatusNotFound)
			return
		}
		expl, err := svc.GenerateExplanation(r.Context(), *orig)
		if err != nil {
			http.Error(w, "explanation failed: "+err.Error(), genStatus(err))
			return
		}
		qs, err := store.Replace(r.Context(), wsID, "explanation", func(cur []question.Question) []question.Question {
			out := make([]question.Question, len(cur))
			for i, q := range cur {
				if q.ID == qid {
					q.Explanation = expl
				}
				out[i] = q
			}
			return out
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, qs)
	}
}

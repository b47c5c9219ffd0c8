package http

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edukita/educbt-studio/internal/bank"
	"github.com/edukita/educbt-studio/internal/question"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func ListWorkspacesHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sums, err := store.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if sums == nil {
			sums = []bank.WorkspaceSummary{}
		}
		writeJSON(w, sums)
	}
}

func GetQuestionsHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.Load(r.Context(), chi.URLParam(r, "workspaceID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if qs == nil {
			qs = []question.Question{}
		}
		writeJSON(w, qs)
	}
}

// PutQuestionsHandler wholesale-replaces the list. Every incoming record
// passes through the normalizer, so hand-edited payloads land in canonical
// shape.
func PutQuestionsHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var incoming []question.Question
		if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		qs, err := store.Replace(r.Context(), chi.URLParam(r, "workspaceID"), "edit", func([]question.Question) []question.Question {
			out := make([]question.Question, len(incoming))
			for i, q := range incoming {
				out[i] = question.Normalize(q, question.Defaults{}, i+1)
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

// mutateOne applies fn to the single question identified by the route and
// replaces it in place. Unknown ids return 404 without writing.
func mutateOne(store bank.Store, op string) func(http.ResponseWriter, *http.Request, func(question.Question) question.Question) {
	return func(w http.ResponseWriter, r *http.Request, fn func(question.Question) question.Question) {
		qid := chi.URLParam(r, "questionID")
		found := false
		qs, err := store.Replace(r.Context(), chi.URLParam(r, "workspaceID"), op, func(cur []question.Question) []question.Question {
			out := make([]question.Question, len(cur))
			for i, q := range cur {
				if q.ID == qid {
					found = true
					out[i] = fn(q)
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
		if !found {
			http.Error(w, "question not found", http.StatusNotFound)
			return
		}
		writeJSON(w, qs)
	}
}

func RetypeHandler(store bank.Store) http.HandlerFunc {
	apply := mutateOne(store, "retype")
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Type string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Type == "" {
			http.Error(w, "type required", http.StatusBadRequest)
			return
		}
		target := question.ParseType(body.Type)
		apply(w, r, func(q question.Question) question.Question {
			return question.ChangeType(q, target)
		})
	}
}

func ShuffleOptionsHandler(store bank.Store) http.HandlerFunc {
	apply := mutateOne(store, "shuffle-options")
	return func(w http.ResponseWriter, r *http.Request) {
		rng := newRNG()
		apply(w, r, func(q question.Question) question.Question {
			return question.ShuffleOptions(q, rng)
		})
	}
}

func TrashHandler(store bank.Store) http.HandlerFunc {
	apply := mutateOne(store, "trash")
	return func(w http.ResponseWriter, r *http.Request) {
		apply(w, r, func(q question.Question) question.Question {
			q.IsDeleted = true
			return q
		})
	}
}

func RestoreHandler(store bank.Store) http.HandlerFunc {
	apply := mutateOne(store, "restore")
	return func(w http.ResponseWriter, r *http.Request) {
		apply(w, r, func(q question.Question) question.Question {
			q.IsDeleted = false
			return q
		})
	}
}

func DeleteQuestionHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qid := chi.URLParam(r, "questionID")
		found := false
		qs, err := store.Replace(r.Context(), chi.URLParam(r, "workspaceID"), "delete", func(cur []question.Question) []question.Question {
			out := make([]question.Question, 0, len(cur))
			for _, q := range cur {
				if q.ID == qid {
					found = true
					continue
				}
				out = append(out, q)
			}
			return out
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !found {
			http.Error(w, "question not found", http.StatusNotFound)
			return
		}
		writeJSON(w, qs)
	}
}

func ShuffleQuestionsHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng := newRNG()
		qs, err := store.Replace(r.Context(), chi.URLParam(r, "workspaceID"), "shuffle", func(cur []question.Question) []question.Question {
			return question.ShuffleQuestions(cur, rng)
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, qs)
	}
}

func ReorderHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.Replace(r.Context(), chi.URLParam(r, "workspaceID"), "reorder", func(cur []question.Question) []question.Question {
			return question.ReorderSequentially(cur)
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, qs)
	}
}

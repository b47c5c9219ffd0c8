package export

import (
	"encoding/json"
	"fmt"

	"github.com/edukita/educbt-studio/internal/question"
)

// WriteJSON serializes the question list verbatim; the answer keys keep
// their polymorphic wire shape so files stay interchangeable with the
// browser tool.
func WriteJSON(qs []question.Question) ([]byte, error) {
	return json.MarshalIndent(qs, "", "  ")
}

// ReadJSON decodes one import file into normalized questions and appends
// them after existing. Records without an id get a fresh one; order
// defaults to the next free slot. Multiple files merge by calling this once
// per file. A malformed file fails as a whole and leaves existing untouched.
func ReadJSON(data []byte, existing []question.Question) ([]question.Question, error) {
	var raws []map[string]interface{}
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("import: invalid question JSON: %w", err)
	}
	next := question.MaxOrder(existing)
	out := append([]question.Question(nil), existing...)
	for i, raw := range raws {
		out = append(out, question.FromRaw(raw, question.Defaults{}, next+i+1))
	}
	return out, nil
}

package question

import (
	"encoding/json"
	"strings"
)

// Type is one of the seven question variants the authoring tool supports.
// The string values match what the generator and existing JSON files emit.
type Type string

const (
	TypePilihanGanda      Type = "Pilihan Ganda"          // single choice
	TypeMCMA              Type = "Pilihan Jamak (MCMA)"   // multiple choice, multiple answers
	TypeKompleks          Type = "Pilihan Ganda Kompleks" // per-statement boolean, checkbox style
	TypeBenarSalah        Type = "(Benar/Salah)"
	TypeSesuaiTidakSesuai Type = "(Sesuai/Tidak Sesuai)"
	TypeIsian             Type = "ISIAN"
	TypeUraian            Type = "URAIAN"
)

// kind buckets types by the shape their answer key must take.
type kind int

const (
	kindSingle kind = iota // one index
	kindMulti              // sorted index list
	kindFlags              // boolean per option
	kindText               // free string
)

func kindOf(t Type) kind {
	switch t {
	case TypePilihanGanda:
		return kindSingle
	case TypeMCMA:
		return kindMulti
	case TypeKompleks, TypeBenarSalah, TypeSesuaiTidakSesuai:
		return kindFlags
	case TypeIsian, TypeUraian:
		return kindText
	}
	return kindSingle
}

// ParseType resolves a loose type string (model output, spreadsheet cell,
// older JSON files) to a canonical Type. Unrecognized input is treated as
// single choice, consistent with the normalizer's never-fail policy.
func ParseType(s string) Type {
	switch t := Type(strings.TrimSpace(s)); t {
	case TypePilihanGanda, TypeMCMA, TypeKompleks, TypeBenarSalah, TypeSesuaiTidakSesuai, TypeIsian, TypeUraian:
		return t
	}
	low := strings.ToLower(s)
	switch {
	case strings.Contains(low, "sesuai"):
		return TypeSesuaiTidakSesuai
	case strings.Contains(low, "benar") || strings.Contains(low, "b/s"):
		return TypeBenarSalah
	case strings.Contains(low, "kompleks") || strings.Contains(low, "complex"):
		return TypeKompleks
	case strings.Contains(low, "jamak") || strings.Contains(low, "mcma") || strings.Contains(low, "multi"):
		return TypeMCMA
	case strings.Contains(low, "isian") || strings.Contains(low, "short"):
		return TypeIsian
	case strings.Contains(low, "uraian") || strings.Contains(low, "essay") || strings.Contains(low, "esai"):
		return TypeUraian
	}
	return TypePilihanGanda
}

// TFLabels is the display-label pair for the two poles of a boolean table
// question, e.g. Benar/Salah.
type TFLabels struct {
	True  string `json:"true"`
	False string `json:"false"`
}

// DefaultLabels returns the label pair a table type carries when the
// generator supplied none. Non-table types have no labels.
func DefaultLabels(t Type) *TFLabels {
	switch t {
	case TypeBenarSalah:
		return &TFLabels{True: "Benar", False: "Salah"}
	case TypeSesuaiTidakSesuai:
		return &TFLabels{True: "Sesuai", False: "Tidak Sesuai"}
	}
	return nil
}

// AnswerKind tags which arm of the AnswerKey union is populated.
type AnswerKind int

const (
	AnswerIndex   AnswerKind = iota // single choice
	AnswerIndices                   // multi choice
	AnswerFlags                     // table types
	AnswerText                      // short answer / essay
)

// AnswerKey is the polymorphic answer field. Exactly one arm is meaningful,
// selected by Kind, which must always agree with the question's Type. On the
// wire it is a bare number, an array of numbers, an array of booleans, or a
// string, matching the files the original tool reads and writes.
type AnswerKey struct {
	Kind    AnswerKind
	Index   int
	Indices []int
	Flags   []bool
	Text    string
}

func IndexKey(i int) AnswerKey      { return AnswerKey{Kind: AnswerIndex, Index: i} }
func IndicesKey(ix []int) AnswerKey { return AnswerKey{Kind: AnswerIndices, Indices: ix} }
func FlagsKey(fl []bool) AnswerKey  { return AnswerKey{Kind: AnswerFlags, Flags: fl} }
func TextKey(s string) AnswerKey    { return AnswerKey{Kind: AnswerText, Text: s} }

func (k AnswerKey) MarshalJSON() ([]byte, error) {
	switch k.Kind {
	case AnswerIndex:
		return json.Marshal(k.Index)
	case AnswerIndices:
		if k.Indices == nil {
			return json.Marshal([]int{})
		}
		return json.Marshal(k.Indices)
	case AnswerFlags:
		if k.Flags == nil {
			return json.Marshal([]bool{})
		}
		return json.Marshal(k.Flags)
	default:
		return json.Marshal(k.Text)
	}
}

// UnmarshalJSON accepts whatever shape the payload carries and records a
// best-guess arm. The normalizer settles the final Kind against the
// question's resolved type.
func (k *AnswerKey) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		*k = AnswerKey{}
		return nil
	}
	*k = answerFromAny(v)
	return nil
}

// Equal reports deep equality of two keys.
func (k AnswerKey) Equal(o AnswerKey) bool {
	if k.Kind != o.Kind {
		return false
	}
	switch k.Kind {
	case AnswerIndex:
		return k.Index == o.Index
	case AnswerIndices:
		if len(k.Indices) != len(o.Indices) {
			return false
		}
		for i := range k.Indices {
			if k.Indices[i] != o.Indices[i] {
				return false
			}
		}
		return true
	case AnswerFlags:
		if len(k.Flags) != len(o.Flags) {
			return false
		}
		for i := range k.Flags {
			if k.Flags[i] != o.Flags[i] {
				return false
			}
		}
		return true
	default:
		return k.Text == o.Text
	}
}

// Question is the central authoring record.
type Question struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	Level         string    `json:"level"` // L1 | L2 | L3
	Subject       string    `json:"subject"`
	Phase         string    `json:"phase"`
	Material      string    `json:"material"`
	Text          string    `json:"text"`
	StimulusText  string    `json:"stimulusText,omitempty"`
	StimulusImage string    `json:"stimulusImage,omitempty"`
	Explanation   string    `json:"explanation"`
	Options       []string  `json:"options"`
	OptionImages  []string  `json:"optionImages,omitempty"`
	Image         string    `json:"image,omitempty"`
	CorrectAnswer AnswerKey `json:"correctAnswer"`
	TFLabels      *TFLabels `json:"tfLabels,omitempty"`
	QuizToken     string    `json:"quizToken"`
	Order         int       `json:"order"`
	IsDeleted     bool      `json:"isDeleted"`
	CreatedAt     int64     `json:"createdAt"` // unix millis
}

// Clone returns a deep copy; mutating the copy never touches the original.
func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	if q.OptionImages != nil {
		c.OptionImages = append([]string(nil), q.OptionImages...)
	}
	if q.CorrectAnswer.Indices != nil {
		c.CorrectAnswer.Indices = append([]int(nil), q.CorrectAnswer.Indices...)
	}
	if q.CorrectAnswer.Flags != nil {
		c.CorrectAnswer.Flags = append([]bool(nil), q.CorrectAnswer.Flags...)
	}
	if q.TFLabels != nil {
		l := *q.TFLabels
		c.TFLabels = &l
	}
	return c
}

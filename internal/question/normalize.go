package question

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults carries generation-config values backfilled onto questions whose
// payload omits them.
type Defaults struct {
	Subject   string
	Phase     string
	Material  string
	QuizToken string
}

// FromRaw builds a well-formed Question from an untrusted decoded JSON
// object (a generator response item or an import record). position is the
// 1-based slot used when the payload carries no usable order. It never
// fails: every malformed field degrades to a safe default.
func FromRaw(raw map[string]interface{}, d Defaults, position int) Question {
	q := Question{
		ID:            asString(raw["id"]),
		Type:          ParseType(asString(raw["type"])),
		Level:         strings.ToUpper(strings.TrimSpace(asString(raw["level"]))),
		Subject:       asString(raw["subject"]),
		Phase:         asString(raw["phase"]),
		Material:      asString(raw["material"]),
		Text:          asString(raw["text"]),
		StimulusText:  asString(raw["stimulusText"]),
		StimulusImage: asString(raw["stimulusImage"]),
		Explanation:   asString(raw["explanation"]),
		Image:         asString(raw["image"]),
		Options:       asStringSlice(raw["options"]),
		OptionImages:  asStringSlice(raw["optionImages"]),
		QuizToken:     asString(raw["quizToken"]),
		Order:         asInt(raw["order"]),
		IsDeleted:     asBool(raw["isDeleted"]),
		CreatedAt:     int64(asInt(raw["createdAt"])),
	}
	if labels, ok := raw["tfLabels"].(map[string]interface{}); ok {
		q.TFLabels = &TFLabels{True: asString(labels["true"]), False: asString(labels["false"])}
	}
	q.CorrectAnswer = CoerceAnswer(raw["correctAnswer"], q.Type, len(q.Options))
	return Normalize(q, d, position)
}

// Normalize settles an already-decoded Question against the model
// invariants: the answer key matches the type, table types carry labels,
// free text is sanitized, and bookkeeping fields are filled in. Normalizing
// a normalized question is a no-op.
func Normalize(q Question, d Defaults, position int) Question {
	q = q.Clone()
	q.Type = ParseType(string(q.Type))
	q.CorrectAnswer = coerceKey(q.CorrectAnswer, q.Type, len(q.Options))

	if kindOf(q.Type) == kindFlags {
		if q.TFLabels == nil || (q.TFLabels.True == "" && q.TFLabels.False == "") {
			q.TFLabels = DefaultLabels(q.Type)
		}
	}

	q.Text = CleanText(q.Text)
	q.Explanation = CleanText(q.Explanation)
	q.StimulusText = CleanText(q.StimulusText)

	if q.ID == "" {
		q.ID = NewID()
	}
	if q.Level == "" {
		q.Level = "L1"
	}
	if q.Subject == "" {
		q.Subject = d.Subject
	}
	if q.Phase == "" {
		q.Phase = d.Phase
	}
	if q.Material == "" {
		q.Material = d.Material
	}
	q.QuizToken = strings.ToUpper(strings.TrimSpace(q.QuizToken))
	if q.QuizToken == "" {
		q.QuizToken = strings.ToUpper(strings.TrimSpace(d.QuizToken))
	}
	if q.Order <= 0 {
		if position > 0 {
			q.Order = position
		} else {
			q.Order = 1
		}
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().UnixMilli()
	}
	return q
}

// NewID returns a collision-resistant question id.
func NewID() string { return "q_" + uuid.NewString() }

// --- tolerant field readers ---

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func asInt(v interface{}) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func asStringSlice(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		out = append(out, asString(e))
	}
	return out
}

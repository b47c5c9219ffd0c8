package question

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// answerFromAny guesses an AnswerKey arm from a decoded JSON value without
// knowing the question type yet. CoerceAnswer settles the final shape.
func answerFromAny(v interface{}) AnswerKey {
	switch t := v.(type) {
	case nil:
		return AnswerKey{}
	case float64:
		return IndexKey(int(t))
	case bool:
		return FlagsKey([]bool{t})
	case string:
		return TextKey(t)
	case []interface{}:
		if len(t) == 0 {
			return IndicesKey(nil)
		}
		if _, ok := t[0].(bool); ok {
			fl := make([]bool, 0, len(t))
			for _, e := range t {
				b, _ := e.(bool)
				fl = append(fl, b)
			}
			return FlagsKey(fl)
		}
		ix := make([]int, 0, len(t))
		for _, e := range t {
			switch n := e.(type) {
			case float64:
				ix = append(ix, int(n))
			case string:
				if i, ok := tokenToIndex(n); ok {
					ix = append(ix, i)
				}
			}
		}
		return IndicesKey(ix)
	default:
		return AnswerKey{}
	}
}

// CoerceAnswer forces a loosely-shaped key into the shape the resolved type
// requires. It never fails: unusable input degrades to the type's zero key
// (index 0, empty selection, all-false flags, empty string).
func CoerceAnswer(v interface{}, t Type, optionCount int) AnswerKey {
	if s, ok := v.(string); ok {
		if dec, ok := decodeJSONString(s); ok {
			v = dec
		}
	}
	switch kindOf(t) {
	case kindSingle:
		return coerceSingle(v, optionCount)
	case kindMulti:
		return coerceMulti(v)
	case kindFlags:
		return coerceFlags(v, optionCount)
	default:
		return coerceText(v)
	}
}

// coerceKey is CoerceAnswer for values already held in an AnswerKey.
func coerceKey(k AnswerKey, t Type, optionCount int) AnswerKey {
	return CoerceAnswer(keyToAny(k), t, optionCount)
}

func keyToAny(k AnswerKey) interface{} {
	switch k.Kind {
	case AnswerIndex:
		return float64(k.Index)
	case AnswerIndices:
		out := make([]interface{}, len(k.Indices))
		for i, n := range k.Indices {
			out[i] = float64(n)
		}
		return out
	case AnswerFlags:
		out := make([]interface{}, len(k.Flags))
		for i, b := range k.Flags {
			out[i] = b
		}
		return out
	default:
		return k.Text
	}
}

func coerceSingle(v interface{}, optionCount int) AnswerKey {
	idx := 0
	switch t := v.(type) {
	case float64:
		idx = int(t)
	case int:
		idx = t
	case string:
		if i, ok := tokenToIndex(t); ok {
			idx = i
		}
	case []interface{}:
		for pos, e := range t {
			switch n := e.(type) {
			case bool:
				// boolean array: first true wins, none means 0
				if n {
					return clampIndex(pos, optionCount)
				}
			case float64:
				// index array: take the first element
				return clampIndex(int(n), optionCount)
			case string:
				if i, ok := tokenToIndex(n); ok {
					return clampIndex(i, optionCount)
				}
				return IndexKey(0)
			default:
				return IndexKey(0)
			}
		}
		return IndexKey(0)
	}
	return clampIndex(idx, optionCount)
}

func clampIndex(i, optionCount int) AnswerKey {
	if i < 0 || (optionCount > 0 && i >= optionCount) {
		return IndexKey(0)
	}
	return IndexKey(i)
}

func coerceMulti(v interface{}) AnswerKey {
	switch t := v.(type) {
	case float64:
		return IndicesKey([]int{int(t)})
	case int:
		return IndicesKey([]int{t})
	case string:
		var ix []int
		for _, tok := range splitKey(t) {
			if i, ok := tokenToIndex(tok); ok {
				ix = append(ix, i)
			}
		}
		sort.Ints(ix)
		return IndicesKey(ix)
	case []interface{}:
		var ix []int
		for pos, e := range t {
			switch n := e.(type) {
			case float64:
				ix = append(ix, int(n))
			case bool:
				if n {
					ix = append(ix, pos)
				}
			case string:
				if i, ok := tokenToIndex(n); ok {
					ix = append(ix, i)
				}
			}
		}
		sort.Ints(ix)
		return IndicesKey(ix)
	}
	return IndicesKey(nil)
}

func coerceFlags(v interface{}, optionCount int) AnswerKey {
	fl := make([]bool, optionCount)
	switch t := v.(type) {
	case float64:
		if i := int(t); i >= 0 && i < optionCount {
			fl[i] = true
		}
	case string:
		toks := splitKey(t)
		boolish := len(toks) > 0
		for _, tok := range toks {
			if _, ok := tokenToBool(tok); !ok {
				boolish = false
				break
			}
		}
		if boolish {
			for pos, tok := range toks {
				if pos >= optionCount {
					break
				}
				fl[pos], _ = tokenToBool(tok)
			}
			break
		}
		// letter-notation cells ("A, C") mark the true positions instead
		for _, tok := range toks {
			if i, ok := tokenToIndex(tok); ok && i < optionCount {
				fl[i] = true
			}
		}
	case []interface{}:
		allBool := true
		for _, e := range t {
			if _, ok := e.(bool); !ok {
				allBool = false
				break
			}
		}
		if allBool && len(t) > 0 {
			for pos, e := range t {
				if pos >= optionCount {
					break
				}
				fl[pos], _ = e.(bool)
			}
			break
		}
		for pos, e := range t {
			switch n := e.(type) {
			case float64:
				if i := int(n); i >= 0 && i < optionCount {
					fl[i] = true
				}
			case string:
				if b, ok := tokenToBool(n); ok && pos < optionCount {
					fl[pos] = b
				} else if i, ok := tokenToIndex(n); ok && i < optionCount {
					fl[i] = true
				}
			}
		}
	}
	return FlagsKey(fl)
}

func coerceText(v interface{}) AnswerKey {
	switch t := v.(type) {
	case string:
		return TextKey(t)
	case float64:
		return TextKey(strconv.FormatFloat(t, 'f', -1, 64))
	}
	return TextKey("")
}

// decodeJSONString unwraps answer keys that arrive JSON-encoded inside a
// string cell, e.g. "[true,false]" or "[0,2]".
func decodeJSONString(s string) (interface{}, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var v interface{}
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return nil, false
	}
	return v, true
}

func splitKey(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// tokenToIndex maps "2", "A".."Z" to an option index.
func tokenToIndex(s string) (int, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(t); err == nil {
		return n, true
	}
	up := strings.ToUpper(t)
	if len(up) == 1 && up[0] >= 'A' && up[0] <= 'Z' {
		return int(up[0] - 'A'), true
	}
	return 0, false
}

// tokenToBool maps the accepted truth tokens. The single letter S reads as
// Salah (false); fit keys spell SESUAI out in full.
func tokenToBool(s string) (bool, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B", "BENAR", "TRUE", "SESUAI", "YA", "1":
		return true, true
	case "S", "SALAH", "FALSE", "TIDAK SESUAI", "TS", "TIDAK", "0":
		return false, true
	}
	return false, false
}

// IndexToLetter renders option index 0..n as A..Z for exports.
func IndexToLetter(i int) string {
	if i < 0 || i > 25 {
		return ""
	}
	return string(rune('A' + i))
}

// EncodeKey serializes a question's answer back to the letter/boolean
// notation used by the spreadsheet contract and the answer-key table:
// a single letter, "A, C", "B, S, B", or the literal text.
func EncodeKey(q Question) string {
	switch q.CorrectAnswer.Kind {
	case AnswerIndex:
		return IndexToLetter(q.CorrectAnswer.Index)
	case AnswerIndices:
		parts := make([]string, 0, len(q.CorrectAnswer.Indices))
		for _, i := range q.CorrectAnswer.Indices {
			if l := IndexToLetter(i); l != "" {
				parts = append(parts, l)
			}
		}
		return strings.Join(parts, ", ")
	case AnswerFlags:
		// Benar/Salah compresses to the classic single letters; other label
		// pairs are written in full so the import side can decode them
		// unambiguously (the letter S always reads as Salah).
		trueTok, falseTok := "B", "S"
		if q.TFLabels != nil && q.TFLabels.True != "" && !strings.EqualFold(q.TFLabels.True, "Benar") {
			trueTok = strings.ToUpper(q.TFLabels.True)
			falseTok = strings.ToUpper(q.TFLabels.False)
		}
		parts := make([]string, len(q.CorrectAnswer.Flags))
		for i, b := range q.CorrectAnswer.Flags {
			if b {
				parts[i] = trueTok
			} else {
				parts[i] = falseTok
			}
		}
		return strings.Join(parts, ", ")
	default:
		return q.CorrectAnswer.Text
	}
}

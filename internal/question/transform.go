package question

import "sort"

// ChangeType converts a question to the target type, re-deriving the answer
// key so its meaning carries over as far as the target shape allows. Lossy
// conversions (e.g. several selections collapsing into one) deterministically
// keep the first qualifying value. ID and Order always survive; options are
// retained even for text types so switching back loses nothing.
func ChangeType(q Question, target Type) Question {
	out := q.Clone()
	out.Type = target

	switch kindOf(target) {
	case kindSingle:
		out.CorrectAnswer = toSingle(q.CorrectAnswer)
		out.TFLabels = nil
	case kindMulti:
		out.CorrectAnswer = toMulti(q.CorrectAnswer)
		out.TFLabels = nil
	case kindFlags:
		out.CorrectAnswer = toFlags(q.CorrectAnswer, len(q.Options))
		if out.TFLabels == nil {
			out.TFLabels = DefaultLabels(target)
		}
	default:
		out.CorrectAnswer = TextKey("")
		out.TFLabels = nil
	}
	return out
}

func toSingle(k AnswerKey) AnswerKey {
	switch k.Kind {
	case AnswerFlags:
		for i, b := range k.Flags {
			if b {
				return IndexKey(i)
			}
		}
		return IndexKey(0)
	case AnswerIndices:
		if len(k.Indices) > 0 {
			return IndexKey(k.Indices[0])
		}
		return IndexKey(0)
	case AnswerIndex:
		return IndexKey(k.Index)
	default:
		return IndexKey(0)
	}
}

func toMulti(k AnswerKey) AnswerKey {
	switch k.Kind {
	case AnswerIndex:
		return IndicesKey([]int{k.Index})
	case AnswerFlags:
		var ix []int
		for i, b := range k.Flags {
			if b {
				ix = append(ix, i)
			}
		}
		return IndicesKey(ix)
	case AnswerIndices:
		ix := append([]int(nil), k.Indices...)
		sort.Ints(ix)
		return IndicesKey(ix)
	default:
		return IndicesKey(nil)
	}
}

func toFlags(k AnswerKey, optionCount int) AnswerKey {
	fl := make([]bool, optionCount)
	switch k.Kind {
	case AnswerIndex:
		if k.Index >= 0 && k.Index < optionCount {
			fl[k.Index] = true
		}
	case AnswerIndices:
		for _, i := range k.Indices {
			if i >= 0 && i < optionCount {
				fl[i] = true
			}
		}
	case AnswerFlags:
		copy(fl, k.Flags)
	}
	return FlagsKey(fl)
}

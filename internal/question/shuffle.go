package question

import (
	"math/rand"
	"sort"
)

// ShuffleOptions permutes a question's options (and option images) with a
// uniform Fisher-Yates permutation and remaps the answer key so the same
// underlying statements stay marked correct. Text types and questions with
// fewer than two options pass through unchanged.
func ShuffleOptions(q Question, rng *rand.Rand) Question {
	if len(q.Options) <= 1 || kindOf(q.Type) == kindText {
		return q
	}
	return permuteOptions(q, rng.Perm(len(q.Options)))
}

// ShuffleAllOptions applies ShuffleOptions to every question in the list.
func ShuffleAllOptions(qs []Question, rng *rand.Rand) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = ShuffleOptions(q, rng)
	}
	return out
}

// permuteOptions applies a fixed permutation: newOptions[i] = options[perm[i]].
func permuteOptions(q Question, perm []int) Question {
	out := q.Clone()
	out.Options = make([]string, len(perm))
	for i, src := range perm {
		out.Options[i] = q.Options[src]
	}
	if q.OptionImages != nil {
		out.OptionImages = make([]string, len(perm))
		for i, src := range perm {
			if src < len(q.OptionImages) {
				out.OptionImages[i] = q.OptionImages[src]
			}
		}
	}

	switch q.CorrectAnswer.Kind {
	case AnswerIndex:
		out.CorrectAnswer = IndexKey(indexOf(perm, q.CorrectAnswer.Index))
	case AnswerIndices:
		ix := make([]int, 0, len(q.CorrectAnswer.Indices))
		for _, old := range q.CorrectAnswer.Indices {
			ix = append(ix, indexOf(perm, old))
		}
		sort.Ints(ix)
		out.CorrectAnswer = IndicesKey(ix)
	case AnswerFlags:
		fl := make([]bool, len(perm))
		for i, src := range perm {
			if src < len(q.CorrectAnswer.Flags) {
				fl[i] = q.CorrectAnswer.Flags[src]
			}
		}
		out.CorrectAnswer = FlagsKey(fl)
	}
	return out
}

func indexOf(perm []int, v int) int {
	for i, p := range perm {
		if p == v {
			return i
		}
	}
	return 0
}

// ShuffleQuestions randomly reorders the active questions and renumbers
// their order 1..n. Trashed questions are left out of the shuffle and
// appended after the active set with their order untouched.
func ShuffleQuestions(qs []Question, rng *rand.Rand) []Question {
	active, trashed := Partition(qs)
	rng.Shuffle(len(active), func(i, j int) { active[i], active[j] = active[j], active[i] })
	for i := range active {
		active[i].Order = i + 1
	}
	return append(active, trashed...)
}

// ReorderSequentially restores a canonical sequence: active questions are
// sorted by quiz token then existing order and renumbered 1..n. Trashed
// questions keep their order and follow the active set unsorted, the same
// partition the shuffler uses.
func ReorderSequentially(qs []Question) []Question {
	active, trashed := Partition(qs)
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].QuizToken != active[j].QuizToken {
			return active[i].QuizToken < active[j].QuizToken
		}
		return active[i].Order < active[j].Order
	})
	for i := range active {
		active[i].Order = i + 1
	}
	return append(active, trashed...)
}

// Partition splits a list into active and trashed questions, preserving
// relative order within each and copying every element.
func Partition(qs []Question) (active, trashed []Question) {
	for _, q := range qs {
		if q.IsDeleted {
			trashed = append(trashed, q.Clone())
		} else {
			active = append(active, q.Clone())
		}
	}
	return active, trashed
}

// MaxOrder returns the highest order value in the list, 0 when empty.
// New generations append after it.
func MaxOrder(qs []Question) int {
	max := 0
	for _, q := range qs {
		if q.Order > max {
			max = q.Order
		}
	}
	return max
}

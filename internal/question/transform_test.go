package question

import (
	"reflect"
	"testing"
)

func baseQuestion(t Type, key AnswerKey) Question {
	return Question{
		ID: "q-fixed", Type: t, Order: 7,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: key,
	}
}

func TestChangeTypeToSingle(t *testing.T) {
	cases := []struct {
		name string
		from Question
		want int
	}{
		{"flags first true", baseQuestion(TypeBenarSalah, FlagsKey([]bool{false, false, true, true})), 2},
		{"flags none true", baseQuestion(TypeBenarSalah, FlagsKey([]bool{false, false, false, false})), 0},
		{"indices first", baseQuestion(TypeMCMA, IndicesKey([]int{1, 3})), 1},
		{"empty indices", baseQuestion(TypeMCMA, IndicesKey(nil)), 0},
		{"text", baseQuestion(TypeIsian, TextKey("bebas")), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ChangeType(tc.from, TypePilihanGanda)
			if got.CorrectAnswer.Kind != AnswerIndex || got.CorrectAnswer.Index != tc.want {
				t.Fatalf("got %+v, want index %d", got.CorrectAnswer, tc.want)
			}
			if got.ID != tc.from.ID || got.Order != tc.from.Order {
				t.Fatalf("id/order not preserved: %+v", got)
			}
		})
	}
}

func TestChangeTypeToMulti(t *testing.T) {
	q := ChangeType(baseQuestion(TypePilihanGanda, IndexKey(2)), TypeMCMA)
	if !reflect.DeepEqual(q.CorrectAnswer.Indices, []int{2}) {
		t.Fatalf("scalar not wrapped: %v", q.CorrectAnswer.Indices)
	}
	q = ChangeType(baseQuestion(TypeBenarSalah, FlagsKey([]bool{true, false, true, false})), TypeMCMA)
	if !reflect.DeepEqual(q.CorrectAnswer.Indices, []int{0, 2}) {
		t.Fatalf("flags not converted: %v", q.CorrectAnswer.Indices)
	}
}

func TestChangeTypeToTable(t *testing.T) {
	q := ChangeType(baseQuestion(TypePilihanGanda, IndexKey(1)), TypeBenarSalah)
	if !reflect.DeepEqual(q.CorrectAnswer.Flags, []bool{false, true, false, false}) {
		t.Fatalf("single index not placed: %v", q.CorrectAnswer.Flags)
	}
	if q.TFLabels == nil || q.TFLabels.True != "Benar" {
		t.Fatalf("default labels missing: %+v", q.TFLabels)
	}

	q = ChangeType(baseQuestion(TypeMCMA, IndicesKey([]int{0, 3})), TypeSesuaiTidakSesuai)
	if !reflect.DeepEqual(q.CorrectAnswer.Flags, []bool{true, false, false, true}) {
		t.Fatalf("indices not placed: %v", q.CorrectAnswer.Flags)
	}
	if q.TFLabels.True != "Sesuai" {
		t.Fatalf("labels = %+v", q.TFLabels)
	}

	// existing boolean array is reused, truncated/padded to the option count
	short := baseQuestion(TypeKompleks, FlagsKey([]bool{true, true}))
	q = ChangeType(short, TypeBenarSalah)
	if !reflect.DeepEqual(q.CorrectAnswer.Flags, []bool{true, true, false, false}) {
		t.Fatalf("flags not padded: %v", q.CorrectAnswer.Flags)
	}
}

func TestChangeTypeToText(t *testing.T) {
	q := ChangeType(baseQuestion(TypePilihanGanda, IndexKey(2)), TypeUraian)
	if q.CorrectAnswer.Kind != AnswerText || q.CorrectAnswer.Text != "" {
		t.Fatalf("answer = %+v, want empty text", q.CorrectAnswer)
	}
	if len(q.Options) != 4 {
		t.Fatalf("options dropped on text conversion: %v", q.Options)
	}
}

func TestChangeTypeRoundTrip(t *testing.T) {
	orig := baseQuestion(TypePilihanGanda, IndexKey(3))
	multi := ChangeType(orig, TypeMCMA)
	back := ChangeType(multi, TypePilihanGanda)
	if back.CorrectAnswer.Index != 3 {
		t.Fatalf("round trip lost the index: %+v", back.CorrectAnswer)
	}
}

package question

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFromRawLetterDecoding(t *testing.T) {
	raw := map[string]interface{}{
		"type":          "Pilihan Jamak (MCMA)",
		"text":          "Pilih semua jawaban benar",
		"options":       []interface{}{"a", "b", "c", "d"},
		"correctAnswer": "A, C",
	}
	q := FromRaw(raw, Defaults{}, 1)
	if q.CorrectAnswer.Kind != AnswerIndices {
		t.Fatalf("kind = %v, want indices", q.CorrectAnswer.Kind)
	}
	if !reflect.DeepEqual(q.CorrectAnswer.Indices, []int{0, 2}) {
		t.Fatalf("indices = %v, want [0 2]", q.CorrectAnswer.Indices)
	}
}

func TestFromRawTablePadding(t *testing.T) {
	raw := map[string]interface{}{
		"type":          "(Benar/Salah)",
		"text":          "Tentukan benar atau salah",
		"options":       []interface{}{"P1", "P2", "P3"},
		"correctAnswer": "B,S",
	}
	q := FromRaw(raw, Defaults{}, 1)
	want := []bool{true, false, false}
	if !reflect.DeepEqual(q.CorrectAnswer.Flags, want) {
		t.Fatalf("flags = %v, want %v", q.CorrectAnswer.Flags, want)
	}
	if q.TFLabels == nil || q.TFLabels.True != "Benar" || q.TFLabels.False != "Salah" {
		t.Fatalf("tfLabels = %+v, want Benar/Salah defaults", q.TFLabels)
	}
}

func TestFromRawKompleksLetterKey(t *testing.T) {
	raw := map[string]interface{}{
		"type":          "Pilihan Ganda Kompleks",
		"text":          "Pilih semua pernyataan yang benar",
		"options":       []interface{}{"P1", "P2", "P3", "P4"},
		"correctAnswer": "A, C",
	}
	q := FromRaw(raw, Defaults{}, 1)
	want := []bool{true, false, true, false}
	if !reflect.DeepEqual(q.CorrectAnswer.Flags, want) {
		t.Fatalf("flags = %v, want %v", q.CorrectAnswer.Flags, want)
	}
	if q.TFLabels != nil {
		t.Fatalf("tfLabels = %+v, want none for Kompleks", q.TFLabels)
	}
}

func TestFromRawSingleChoiceDefaults(t *testing.T) {
	cases := []struct {
		name string
		key  interface{}
		want int
	}{
		{"numeric string", "2", 2},
		{"letter", "C", 2},
		{"out of range", float64(9), 0},
		{"garbage", "x/y", 0},
		{"nil", nil, 0},
		{"bool array first true", []interface{}{false, true, false}, 1},
		{"index array", []interface{}{float64(3), float64(1)}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := map[string]interface{}{
				"type":          "Pilihan Ganda",
				"options":       []interface{}{"a", "b", "c", "d"},
				"correctAnswer": tc.key,
			}
			q := FromRaw(raw, Defaults{}, 1)
			if q.CorrectAnswer.Kind != AnswerIndex || q.CorrectAnswer.Index != tc.want {
				t.Fatalf("got %+v, want index %d", q.CorrectAnswer, tc.want)
			}
		})
	}
}

func TestFromRawJSONEncodedKey(t *testing.T) {
	raw := map[string]interface{}{
		"type":          "(Sesuai/Tidak Sesuai)",
		"options":       []interface{}{"P1", "P2"},
		"correctAnswer": "[true,false]",
	}
	q := FromRaw(raw, Defaults{}, 1)
	if !reflect.DeepEqual(q.CorrectAnswer.Flags, []bool{true, false}) {
		t.Fatalf("flags = %v", q.CorrectAnswer.Flags)
	}
	if q.TFLabels.True != "Sesuai" || q.TFLabels.False != "Tidak Sesuai" {
		t.Fatalf("tfLabels = %+v", q.TFLabels)
	}
}

func TestFromRawTextTypes(t *testing.T) {
	raw := map[string]interface{}{
		"type":          "ISIAN",
		"text":          "Ibu kota Indonesia adalah ...",
		"correctAnswer": "Jakarta",
	}
	q := FromRaw(raw, Defaults{}, 1)
	if q.CorrectAnswer.Kind != AnswerText || q.CorrectAnswer.Text != "Jakarta" {
		t.Fatalf("got %+v, want verbatim text", q.CorrectAnswer)
	}
	if len(q.Options) != 0 {
		t.Fatalf("options = %v, want none", q.Options)
	}
}

func TestNormalizeBackfillsDefaults(t *testing.T) {
	d := Defaults{Subject: "Matematika", Phase: "Fase D", Material: "Aljabar", QuizToken: "tok1"}
	q := FromRaw(map[string]interface{}{
		"type":          "Pilihan Ganda",
		"options":       []interface{}{"a", "b"},
		"correctAnswer": float64(1),
	}, d, 3)
	if q.Subject != "Matematika" || q.Phase != "Fase D" || q.Material != "Aljabar" {
		t.Fatalf("defaults not applied: %+v", q)
	}
	if q.QuizToken != "TOK1" {
		t.Fatalf("quizToken = %q, want uppercased TOK1", q.QuizToken)
	}
	if q.Order != 3 {
		t.Fatalf("order = %d, want position 3", q.Order)
	}
	if q.ID == "" || q.CreatedAt == 0 || q.Level != "L1" {
		t.Fatalf("bookkeeping not filled: %+v", q)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	qs := []Question{
		{
			Type: TypeBenarSalah, Text: "Soal $x^2$", Options: []string{"P", "Q", "R"},
			CorrectAnswer: FlagsKey([]bool{true, false, true}),
		},
		{
			Type: TypeMCMA, Text: "Soal jamak", Options: []string{"a", "b", "c"},
			CorrectAnswer: IndicesKey([]int{0, 2}),
		},
		{
			Type: TypeUraian, Text: "Jelaskan", CorrectAnswer: TextKey("bebas"),
		},
	}
	for _, q := range qs {
		once := Normalize(q, Defaults{}, 1)
		twice := Normalize(once, Defaults{}, 1)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("drift on re-normalization:\nonce:  %+v\ntwice: %+v", once, twice)
		}
	}
}

func TestCleanTextPreservesMath(t *testing.T) {
	in := "**Hitung** nilai $x^2 + \\frac{1}{2}$ dari <b>persamaan</b> berikut: $$\\int_0^1 x\\,dx$$"
	got := CleanText(in)
	want := "Hitung nilai $x^2 + \\frac{1}{2}$ dari persamaan berikut: $$\\int_0^1 x\\,dx$$"
	if got != want {
		t.Fatalf("CleanText = %q, want %q", got, want)
	}
}

func TestAnswerKeyJSONRoundTrip(t *testing.T) {
	q := Question{
		ID: "q1", Type: TypeKompleks, Options: []string{"a", "b"},
		CorrectAnswer: FlagsKey([]bool{true, false}),
	}
	b, err := json.Marshal(q)
	if err != nil {
		t.Fatal(err)
	}
	var back Question
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !back.CorrectAnswer.Equal(q.CorrectAnswer) {
		t.Fatalf("round trip changed key: %+v -> %+v", q.CorrectAnswer, back.CorrectAnswer)
	}
	// the wire form must stay polymorphic, not an object
	var probe map[string]interface{}
	_ = json.Unmarshal(b, &probe)
	if _, isObj := probe["correctAnswer"].(map[string]interface{}); isObj {
		t.Fatalf("correctAnswer serialized as object: %s", b)
	}
}

func TestEncodeKey(t *testing.T) {
	cases := []struct {
		q    Question
		want string
	}{
		{Question{Type: TypePilihanGanda, CorrectAnswer: IndexKey(1)}, "B"},
		{Question{Type: TypeMCMA, CorrectAnswer: IndicesKey([]int{0, 2})}, "A, C"},
		{
			Question{
				Type:          TypeBenarSalah,
				CorrectAnswer: FlagsKey([]bool{true, false, true}),
				TFLabels:      &TFLabels{True: "Benar", False: "Salah"},
			},
			"B, S, B",
		},
		{
			Question{
				Type:          TypeSesuaiTidakSesuai,
				CorrectAnswer: FlagsKey([]bool{false, true}),
				TFLabels:      &TFLabels{True: "Sesuai", False: "Tidak Sesuai"},
			},
			"TIDAK SESUAI, SESUAI",
		},
		{Question{Type: TypeIsian, CorrectAnswer: TextKey("Jakarta")}, "Jakarta"},
	}
	for _, tc := range cases {
		if got := EncodeKey(tc.q); got != tc.want {
			t.Errorf("EncodeKey(%v) = %q, want %q", tc.q.Type, got, tc.want)
		}
	}
}

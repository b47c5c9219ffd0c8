package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/edukita/educbt-studio/internal/export"
	"github.com/edukita/educbt-studio/internal/question"
)

func sampleQuestions() []question.Question {
	return []question.Question{
		{
			ID: "q_1", Type: question.TypePilihanGanda, Level: "L2",
			Subject: "Matematika", Phase: "Fase E", Material: "Aljabar",
			Text:          "Berapakah hasil dari $2x + 3 = 7$?",
			Options:       []string{"1", "2", "3", "4"},
			CorrectAnswer: question.IndexKey(1),
			Explanation:   "Kurangkan 3 lalu bagi 2.",
			QuizToken:     "PKT1", Order: 1,
		},
		{
			ID: "q_2", Type: question.TypeBenarSalah, Level: "L1",
			Subject: "Matematika", Phase: "Fase E", Material: "Logika",
			Text:          "Tentukan benar atau salah.",
			Options:       []string{"Dua bilangan genap", "Tiga bilangan prima"},
			CorrectAnswer: question.FlagsKey([]bool{true, false}),
			TFLabels:      &question.TFLabels{True: "Benar", False: "Salah"},
			QuizToken:     "PKT1", Order: 2,
		},
		{
			ID: "q_3", Type: question.TypeUraian, Level: "L3",
			Subject: "Matematika", Phase: "Fase E", Material: "Aljabar",
			Text:          "Jelaskan langkah penyelesaian persamaan linear.",
			CorrectAnswer: question.TextKey("Isolasi variabel lalu selesaikan."),
			QuizToken:     "PKT1", Order: 3,
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	qs := sampleQuestions()
	data, err := export.WriteJSON(qs)
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	merged, err := export.ReadJSON(data, nil)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(merged) != 3 {
		t.Fatalf("got %d questions, want 3", len(merged))
	}
	if !merged[0].CorrectAnswer.Equal(question.IndexKey(1)) {
		t.Errorf("single answer lost: %+v", merged[0].CorrectAnswer)
	}
	if !merged[1].CorrectAnswer.Equal(question.FlagsKey([]bool{true, false})) {
		t.Errorf("flags answer lost: %+v", merged[1].CorrectAnswer)
	}
	if merged[2].CorrectAnswer.Kind != question.AnswerText {
		t.Errorf("text answer kind = %v", merged[2].CorrectAnswer.Kind)
	}
}

func TestJSONImportAppendsAfterMaxOrder(t *testing.T) {
	existing := sampleQuestions()
	file := `[{"type":"Pilihan Ganda","text":"Soal impor","options":["a","b"],"correctAnswer":"B"}]`
	merged, err := export.ReadJSON([]byte(file), existing)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(merged) != 4 {
		t.Fatalf("got %d questions, want 4", len(merged))
	}
	last := merged[3]
	if last.Order != 4 {
		t.Errorf("imported order = %d, want 4", last.Order)
	}
	if last.ID == "" {
		t.Error("imported question without id did not get one")
	}
	if !last.CorrectAnswer.Equal(question.IndexKey(1)) {
		t.Errorf("letter key decoded to %+v", last.CorrectAnswer)
	}
}

func TestJSONImportRejectsInvalidFile(t *testing.T) {
	existing := sampleQuestions()
	_, err := export.ReadJSON([]byte("{not json"), existing)
	if err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	qs := sampleQuestions()
	data, err := export.WriteXLSX(qs)
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	got, err := export.ReadXLSX(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d questions, want 3", len(got))
	}
	if got[0].Type != question.TypePilihanGanda {
		t.Errorf("type = %q", got[0].Type)
	}
	if !got[0].CorrectAnswer.Equal(question.IndexKey(1)) {
		t.Errorf("letter key decoded to %+v", got[0].CorrectAnswer)
	}
	if !got[1].CorrectAnswer.Equal(question.FlagsKey([]bool{true, false})) {
		t.Errorf("flags key decoded to %+v", got[1].CorrectAnswer)
	}
	if got[1].Material != "Logika" {
		t.Errorf("material = %q", got[1].Material)
	}
	if got[2].QuizToken != "PKT1" {
		t.Errorf("token = %q", got[2].QuizToken)
	}
}

func TestXLSXSkipsEmptyRows(t *testing.T) {
	qs := sampleQuestions()[:1]
	data, err := export.WriteXLSX(qs)
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	got, err := export.ReadXLSX(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d questions, want 1", len(got))
	}
}

func TestRenderPaper(t *testing.T) {
	out, err := export.RenderPaper(sampleQuestions())
	if err != nil {
		t.Fatalf("RenderPaper: %v", err)
	}
	doc := string(out)
	for _, want := range []string{
		"NASKAH SOAL UJIAN",
		"Matematika",
		"PKT1",
		"KUNCI JAWABAN",
		"B, S",
		"Kurangkan 3 lalu bagi 2.",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("paper missing %q", want)
		}
	}
}

func TestRenderBlueprint(t *testing.T) {
	out, err := export.RenderBlueprint(sampleQuestions())
	if err != nil {
		t.Fatalf("RenderBlueprint: %v", err)
	}
	doc := string(out)
	for _, want := range []string{"KISI-KISI", "Aljabar", "URAIAN", "L3"} {
		if !strings.Contains(doc, want) {
			t.Errorf("blueprint missing %q", want)
		}
	}
}

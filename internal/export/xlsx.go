package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/edukita/educbt-studio/internal/question"
)

const sheetName = "Soal"

// xlsxHeaders is the fixed column contract shared with the spreadsheet
// template. Option columns cover A..E.
var xlsxHeaders = []string{
	"No", "Tipe Soal", "Level", "Materi", "Teks Soal", "Gambar Soal (URL)",
	"Opsi A", "Opsi B", "Opsi C", "Opsi D", "Opsi E",
	"Gambar Opsi A (URL)", "Gambar Opsi B (URL)", "Gambar Opsi C (URL)",
	"Gambar Opsi D (URL)", "Gambar Opsi E (URL)",
	"Kunci Jawaban", "Pembahasan", "Token Paket",
}

const maxOptionColumns = 5

// WriteXLSX flattens one row per question with the letter/boolean-encoded
// answer key, the inverse of ReadXLSX.
func WriteXLSX(qs []question.Question) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	for col, h := range xlsxHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for i, q := range qs {
		row := []interface{}{
			q.Order, string(q.Type), q.Level, q.Material, q.Text, q.Image,
		}
		for o := 0; o < maxOptionColumns; o++ {
			if o < len(q.Options) {
				row = append(row, q.Options[o])
			} else {
				row = append(row, "")
			}
		}
		for o := 0; o < maxOptionColumns; o++ {
			if o < len(q.OptionImages) {
				row = append(row, q.OptionImages[o])
			} else {
				row = append(row, "")
			}
		}
		row = append(row, question.EncodeKey(q), q.Explanation, q.QuizToken)

		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadXLSX parses an import workbook into normalized questions appended
// after existing. Header matching tolerates case and spacing variants; rows
// whose question text is empty are skipped. Answer-key cells decode by the
// resolved row type through the normalizer, so letters, B/S tokens and free
// text all land in the right shape.
func ReadXLSX(r io.Reader, existing []question.Question) ([]question.Question, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("import: unreadable xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	if len(rows) < 2 {
		return existing, nil
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[canonicalHeader(h)] = i
	}
	cell := func(row []string, header string) string {
		i, ok := colIdx[canonicalHeader(header)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	next := question.MaxOrder(existing)
	out := append([]question.Question(nil), existing...)
	for n, row := range rows[1:] {
		text := cell(row, "Teks Soal")
		if text == "" {
			continue
		}
		var options []interface{}
		var optionImages []interface{}
		hasImages := false
		for _, l := range []string{"A", "B", "C", "D", "E"} {
			opt := cell(row, "Opsi "+l)
			img := cell(row, "Gambar Opsi "+l+" (URL)")
			if opt == "" && img == "" {
				continue
			}
			options = append(options, opt)
			optionImages = append(optionImages, img)
			if img != "" {
				hasImages = true
			}
		}
		raw := map[string]interface{}{
			"type":          cell(row, "Tipe Soal"),
			"level":         cell(row, "Level"),
			"material":      cell(row, "Materi"),
			"text":          text,
			"image":         cell(row, "Gambar Soal (URL)"),
			"options":       options,
			"correctAnswer": cell(row, "Kunci Jawaban"),
			"explanation":   cell(row, "Pembahasan"),
			"quizToken":     cell(row, "Token Paket"),
			"order":         cell(row, "No"),
		}
		if hasImages {
			raw["optionImages"] = optionImages
		}
		q := question.FromRaw(raw, question.Defaults{}, next+n+1)
		out = append(out, q)
	}
	return out, nil
}

func canonicalHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

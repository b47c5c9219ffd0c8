package export

import (
	"bytes"
	"html/template"

	"github.com/edukita/educbt-studio/internal/question"
)

// Naskah (exam paper) and kisi-kisi (blueprint) rendered as Word-compatible
// HTML documents.

const docHeader = `<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'><head><meta charset='utf-8'><title>{{.Title}}</title></head><body>`
const docFooter = `</body></html>`

var paperTmpl = template.Must(template.New("paper").Funcs(tmplFuncs).Parse(docHeader + `
<div style="font-family: 'Times New Roman', serif; line-height: 1.6;">
  <div style="text-align:center; font-weight:bold; font-size:16pt; text-transform:uppercase;">NASKAH SOAL UJIAN</div>
  <div style="text-align:center; font-weight:bold; font-size:14pt; margin-bottom:25px;">MATA PELAJARAN: {{.Subject}}</div>

  <table style="width:100%; margin-bottom:25px; font-size:11pt;">
    <tr><td style="width:20%;">Mata Pelajaran</td><td style="width:2%;">:</td><td>{{.Subject}}</td></tr>
    <tr><td>Fase / Kelas</td><td>:</td><td>{{.Phase}}</td></tr>
    <tr><td>Token Paket</td><td>:</td><td>{{.QuizToken}}</td></tr>
    <tr><td>Waktu</td><td>:</td><td>.......... Menit</td></tr>
  </table>
  <hr/>

  {{range $i, $q := .Questions}}
  <div style="margin-bottom:40px;">
    <div style="font-weight:bold; font-size:12pt;">{{add1 $i}}.
      {{if isMulti $q}}<span style="color:#d11; font-style:italic; font-size:10pt;">(Jawaban bisa lebih dari satu)</span>{{end}}
      {{if isTable $q}}<span style="color:#d11; font-style:italic; font-size:10pt;">(Tentukan {{labelTrue $q}} atau {{labelFalse $q}} pada setiap pernyataan)</span>{{end}}
    </div>
    {{if $q.StimulusText}}<div style="font-style:italic; margin:8px 0;">{{$q.StimulusText}}</div>{{end}}
    <div style="font-weight:bold; margin-bottom:12px; font-size:12pt;">{{$q.Text}}</div>
    {{if $q.Image}}<div style="margin:15px 0;"><img src="{{$q.Image}}" style="max-width:100%;"/></div>{{end}}
    {{if isTable $q}}
    <table style="width:100%; border-collapse:collapse; font-size:11pt;" border="1">
      <tr><th style="width:50px;">No</th><th>Pernyataan</th><th style="width:60px;">{{labelTrue $q}}</th><th style="width:60px;">{{labelFalse $q}}</th></tr>
      {{range $j, $opt := $q.Options}}
      <tr><td style="text-align:center;">{{add1 $j}}</td><td>{{$opt}}</td><td></td><td></td></tr>
      {{end}}
    </table>
    {{else}}
    {{range $j, $opt := $q.Options}}
    <div style="margin-bottom:10px;"><span style="font-weight:bold;">{{letter $j}}.</span> {{$opt}}
      {{with optionImage $q $j}}<div style="margin-top:8px;"><img src="{{.}}" style="max-width:200px;"/></div>{{end}}
    </div>
    {{end}}
    {{end}}
  </div>
  {{end}}

  <div style="margin-top:50px; border-top:2px dashed #666; padding-top:40px;">
    <div style="text-align:center; font-weight:bold; font-size:14pt; text-decoration:underline; margin-bottom:25px;">KUNCI JAWABAN &amp; PEMBAHASAN</div>
    <table style="width:100%; border-collapse:collapse;" border="1">
      <tr><th style="width:8%;">No</th><th style="width:18%;">Kunci</th><th>Pembahasan</th></tr>
      {{range $i, $q := .Questions}}
      <tr>
        <td style="text-align:center; font-weight:bold;">{{add1 $i}}</td>
        <td style="text-align:center; font-weight:bold;">{{encodeKey $q}}</td>
        <td style="font-size:10pt;">{{orDash $q.Explanation}}</td>
      </tr>
      {{end}}
    </table>
  </div>
</div>
` + docFooter))

var blueprintTmpl = template.Must(template.New("blueprint").Funcs(tmplFuncs).Parse(docHeader + `
<div style="font-family: 'Times New Roman', serif;">
  <div style="text-align:center; font-weight:bold; font-size:16pt; text-transform:uppercase;">KISI-KISI PENULISAN SOAL</div>
  <div style="text-align:center; font-weight:bold; font-size:14pt; margin-bottom:35px;">MATA PELAJARAN: {{.Subject}}</div>
  <table style="width:100%; border-collapse:collapse; font-size:10pt;" border="1">
    <tr><th>No</th><th>Materi</th><th>Level</th><th>Bentuk Soal</th><th>No. Soal</th></tr>
    {{range $i, $q := .Questions}}
    <tr>
      <td style="text-align:center;">{{add1 $i}}</td>
      <td>{{$q.Material}}</td>
      <td style="text-align:center;">{{$q.Level}}</td>
      <td>{{$q.Type}}</td>
      <td style="text-align:center;">{{add1 $i}}</td>
    </tr>
    {{end}}
  </table>
</div>
` + docFooter))

var tmplFuncs = template.FuncMap{
	"add1":   func(i int) int { return i + 1 },
	"letter": question.IndexToLetter,
	"isMulti": func(q question.Question) bool {
		return q.Type == question.TypeMCMA || q.Type == question.TypeKompleks
	},
	"isTable": func(q question.Question) bool {
		return q.Type == question.TypeBenarSalah || q.Type == question.TypeSesuaiTidakSesuai
	},
	"labelTrue": func(q question.Question) string {
		if q.TFLabels != nil && q.TFLabels.True != "" {
			return q.TFLabels.True
		}
		return "Benar"
	},
	"labelFalse": func(q question.Question) string {
		if q.TFLabels != nil && q.TFLabels.False != "" {
			return q.TFLabels.False
		}
		return "Salah"
	},
	"encodeKey": question.EncodeKey,
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
	"optionImage": func(q question.Question, i int) string {
		if i < len(q.OptionImages) {
			return q.OptionImages[i]
		}
		return ""
	},
}

type paperData struct {
	Title     string
	Subject   string
	Phase     string
	QuizToken string
	Questions []question.Question
}

func headerData(title string, qs []question.Question) paperData {
	d := paperData{Title: title, Subject: "-", Phase: "-", QuizToken: "-", Questions: qs}
	if len(qs) > 0 {
		if qs[0].Subject != "" {
			d.Subject = qs[0].Subject
		}
		if qs[0].Phase != "" {
			d.Phase = qs[0].Phase
		}
		if qs[0].QuizToken != "" {
			d.QuizToken = qs[0].QuizToken
		}
	}
	return d
}

// RenderPaper produces the naskah document for the active questions.
func RenderPaper(qs []question.Question) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	if err := paperTmpl.Execute(&buf, headerData("Naskah Soal", qs)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderBlueprint produces the kisi-kisi document.
func RenderBlueprint(qs []question.Question) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	if err := blueprintTmpl.Execute(&buf, headerData("Kisi-kisi", qs)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

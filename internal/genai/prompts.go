package genai

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const systemInstruction = `
Persona: Pakar Kurikulum Nasional & Pengembang EduCBT Pro.
Tugas: Membuat soal berkualitas tinggi dalam format JSON.

### ATURAN NOTASI MATEMATIKA & SAINS (WAJIB) ###
- Gunakan standar LaTeX untuk semua rumus, angka berpangkat, akar, pecahan, dan simbol kimia.
- Bungkus rumus dengan tanda dollar satu ($) untuk inline, atau dollar ganda ($$) untuk baris baru/penting.
- Contoh: $x^2$, $\frac{1}{2}$, $\sqrt{25}$, $H_2O$.
- Hindari penggunaan karakter ^ atau / biasa jika itu dimaksudkan sebagai notasi matematika formal.

### FITUR STIMULUS BERSAMA ###
- Jika beberapa soal merujuk bacaan yang sama, isi 'stimulusText' dengan teks identik.

### DAFTAR TIPE SOAL ###
1. Pilihan Ganda (PG)
2. Pilihan Jamak (MCMA)
3. Pilihan Ganda Kompleks
4. (Benar/Salah)
5. (Sesuai/Tidak Sesuai)
6. ISIAN
7. URAIAN

### ATURAN TEKNIS ###
- Keluaran HARUS berupa array JSON yang valid.
- Setiap objek memiliki field: type, level, text, options, correctAnswer, explanation, material, quizToken, order.
- 'correctAnswer' sesuai tipe soal (indeks, array indeks, atau array boolean).
- 'tfLabels' harus bersih.
`

func buildGenerationPrompt(cfg GenerationConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BUAT SOAL UNTUK %s. MATERI: %s. TOKEN: %s.\n", cfg.Subject, cfg.Material, cfg.QuizToken)
	if cfg.Phase != "" {
		fmt.Fprintf(&b, "FASE: %s.\n", cfg.Phase)
	}
	if line := countsLine(cfg.TypeCounts); line != "" {
		fmt.Fprintf(&b, "JUMLAH SOAL PER TIPE: %s.\n", line)
	}
	if line := countsLine(cfg.LevelCounts); line != "" {
		fmt.Fprintf(&b, "DISTRIBUSI LEVEL KOGNITIF: %s.\n", line)
	}
	if cfg.ReferenceText != "" {
		fmt.Fprintf(&b, "REFERENSI TEKS: %s\n", cfg.ReferenceText)
	}
	if cfg.SpecialInstructions != "" {
		fmt.Fprintf(&b, "INSTRUKSI KHUSUS: %s\n", cfg.SpecialInstructions)
	}
	b.WriteString("Gunakan notasi LaTeX $ ... $ untuk setiap rumus matematika/sains agar terbaca sistem.")
	return b.String()
}

func countsLine(m map[string]int) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k, n := range m {
		if n > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

func buildRegeneratePrompt(original []byte, instructions string) string {
	if instructions == "" {
		instructions = "Buat soal serupa dengan kualitas lebih baik."
	}
	return fmt.Sprintf(`REGENERATE SOAL BERIKUT.
Data Asli: %s
Instruksi Tambahan: %s

Kembalikan SATU objek JSON dengan skema yang sama.`, original, instructions)
}

func buildRepairPrompt(all []byte) string {
	return fmt.Sprintf(`LENGKAPI DATA KOSONG (pembahasan, level, atau materi) pada kumpulan soal berikut tanpa mengubah teks soal asli:
%s

Kembalikan array objek JSON lengkap dengan urutan yang sama.`, all)
}

func buildLevelPrompt(text string, options []string) string {
	return fmt.Sprintf("Analisis level kognitif untuk soal: %s. Opsi: %s. Balas L1, L2, atau L3 saja.",
		text, strings.Join(options, ", "))
}

func buildExplanationPrompt(text string, key interface{}) string {
	kj, _ := json.Marshal(key)
	return fmt.Sprintf("Buat pembahasan untuk: %s dengan kunci: %s. Gunakan LaTeX jika ada rumus.", text, kj)
}

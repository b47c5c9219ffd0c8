package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/edukita/educbt-studio/internal/question"
)

// InlineImage is a base64-encoded reference image attached to a generation
// request.
type InlineImage struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

// GenerationConfig is the teacher-facing request shape.
type GenerationConfig struct {
	Subject             string         `json:"subject"`
	Phase               string         `json:"phase"`
	Material            string         `json:"material"`
	TypeCounts          map[string]int `json:"typeCounts"`
	LevelCounts         map[string]int `json:"levelCounts"`
	QuizToken           string         `json:"quizToken"`
	ReferenceText       string         `json:"referenceText,omitempty"`
	ReferenceImage      *InlineImage   `json:"referenceImage,omitempty"`
	SpecialInstructions string         `json:"specialInstructions,omitempty"`
}

func (c GenerationConfig) defaults() question.Defaults {
	return question.Defaults{
		Subject:   c.Subject,
		Phase:     c.Phase,
		Material:  c.Material,
		QuizToken: c.QuizToken,
	}
}

// Service wraps the client with the authoring operations. Every response
// passes through the normalizer, so malformed model output degrades instead
// of failing.
type Service struct {
	client *Client
}

func NewService(client *Client) *Service { return &Service{client: client} }

// GenerateQuestions asks the model for a batch and normalizes each item.
// startOrder is the order value of the first new question.
func (s *Service) GenerateQuestions(ctx context.Context, cfg GenerationConfig, startOrder int) ([]question.Question, error) {
	text, err := s.client.GenerateText(ctx, systemInstruction, buildGenerationPrompt(cfg), cfg.ReferenceImage, true)
	if err != nil {
		return nil, err
	}
	raws, err := decodeArray(text)
	if err != nil {
		return nil, err
	}
	out := make([]question.Question, 0, len(raws))
	for i, raw := range raws {
		q := question.FromRaw(raw, cfg.defaults(), startOrder+i)
		q.Order = startOrder + i
		out = append(out, q)
	}
	return out, nil
}

// RegenerateQuestion replaces one question with a fresh take on it. The
// original id and order always survive so the list position is stable.
func (s *Service) RegenerateQuestion(ctx context.Context, q question.Question, instructions string) (question.Question, error) {
	orig, err := json.Marshal(q)
	if err != nil {
		return question.Question{}, err
	}
	text, err := s.client.GenerateText(ctx, systemInstruction, buildRegeneratePrompt(orig, instructions), nil, true)
	if err != nil {
		return question.Question{}, err
	}
	raw, err := decodeObject(text)
	if err != nil {
		return question.Question{}, err
	}
	re := question.FromRaw(raw, question.Defaults{
		Subject: q.Subject, Phase: q.Phase, Material: q.Material, QuizToken: q.QuizToken,
	}, q.Order)
	re.ID = q.ID
	re.Order = q.Order
	return re, nil
}

// RepairQuestions fills missing explanation/level/material across the whole
// list without touching the question texts. Items the model drops or
// garbles fall back to the original at the same position.
func (s *Service) RepairQuestions(ctx context.Context, qs []question.Question) ([]question.Question, error) {
	all, err := json.Marshal(qs)
	if err != nil {
		return nil, err
	}
	text, err := s.client.GenerateText(ctx, systemInstruction, buildRepairPrompt(all), nil, true)
	if err != nil {
		return nil, err
	}
	raws, err := decodeArray(text)
	if err != nil {
		return nil, err
	}
	out := make([]question.Question, len(qs))
	for i, q := range qs {
		if i >= len(raws) {
			out[i] = q
			continue
		}
		re := question.FromRaw(raws[i], question.Defaults{
			Subject: q.Subject, Phase: q.Phase, Material: q.Material, QuizToken: q.QuizToken,
		}, q.Order)
		re.ID = q.ID
		re.Order = q.Order
		out[i] = re
	}
	return out, nil
}

// SuggestLevel classifies a question as L1, L2 or L3.
func (s *Service) SuggestLevel(ctx context.Context, text string, options []string) (string, error) {
	resp, err := s.client.GenerateText(ctx, "Pakar asesmen.", buildLevelPrompt(text, options), nil, false)
	if err != nil {
		return "", err
	}
	lvl := strings.ToUpper(strings.TrimSpace(resp))
	if len(lvl) >= 2 && lvl[0] == 'L' && lvl[1] >= '1' && lvl[1] <= '3' {
		return lvl[:2], nil
	}
	return "L1", nil
}

// GenerateExplanation writes a pembahasan for one question.
func (s *Service) GenerateExplanation(ctx context.Context, q question.Question) (string, error) {
	resp, err := s.client.GenerateText(ctx, "Pakar pedagogi.", buildExplanationPrompt(q.Text, q.CorrectAnswer), nil, false)
	if err != nil {
		return "", err
	}
	return question.CleanText(resp), nil
}

func decodeArray(text string) ([]map[string]interface{}, error) {
	var raws []map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raws); err != nil {
		return nil, fmt.Errorf("genai: response is not a question array: %w", err)
	}
	return raws, nil
}

func decodeObject(text string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, fmt.Errorf("genai: response is not a question object: %w", err)
	}
	return raw, nil
}

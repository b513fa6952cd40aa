package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wisemik/veretha-backend/internal/domain"
	"github.com/wisemik/veretha-backend/internal/provider/openai"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const maxResumeChars = 24_000

var ErrNoScoreInResponse = errors.New("model response contains no score")

const scoringSystemPrompt = `You are an experienced technical recruiter.
You evaluate how well a resume matches a job description.
Respond STRICTLY with a single JSON object using this schema:
{"score": <integer 0-100>, "feedback": "<2-4 sentences>", "strengths": ["..."], "gaps": ["..."]}`

type ResumeService struct {
	llm    *openai.Client
	logger *zap.Logger
}

func NewResumeService(llm *openai.Client, logger *zap.Logger) *ResumeService {
	return &ResumeService{llm: llm, logger: logger}
}

// Score asks the LLM to rate resumeText against jobDescription.
func (s *ResumeService) Score(ctx context.Context, resumeText, jobDescription string) (*domain.ResumeScore, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return nil, errors.New("resume text and job description are required")
	}
	if len(resumeText) > maxResumeChars {
		resumeText = resumeText[:maxResumeChars]
	}

	prompt := fmt.Sprintf("Job description:\n%s\n\nResume:\n%s", jobDescription, resumeText)

	raw, err := s.llm.Complete(ctx, scoringSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	score, err := parseScoreResponse(raw)
	if err != nil {
		s.logger.Warn("unparseable model response", zap.String("raw", raw), zap.Error(err))
		return nil, err
	}
	return score, nil
}

// parseScoreResponse pulls the JSON object out of the completion. Models
// wrap JSON in markdown fences often enough that we strip them first.
func parseScoreResponse(raw string) (*domain.ResumeScore, error) {
	body := strings.TrimSpace(raw)
	if i := strings.Index(body, "{"); i >= 0 {
		if j := strings.LastIndex(body, "}"); j > i {
			body = body[i : j+1]
		}
	}

	parsed := gjson.Parse(body)
	scoreField := parsed.Get("score")
	if !scoreField.Exists() {
		return nil, ErrNoScoreInResponse
	}

	score := int(scoreField.Int())
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	res := &domain.ResumeScore{
		Score:    score,
		Feedback: parsed.Get("feedback").String(),
	}
	for _, v := range parsed.Get("strengths").Array() {
		res.Strengths = append(res.Strengths, v.String())
	}
	for _, v := range parsed.Get("gaps").Array() {
		res.Gaps = append(res.Gaps, v.String())
	}
	return res, nil
}

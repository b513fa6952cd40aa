package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wisemik/veretha-backend/internal/provider/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseScoreResponse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantScore int
		wantErr   bool
	}{
		{
			name:      "plain json",
			raw:       `{"score": 85, "feedback": "solid match", "strengths": ["go"], "gaps": ["k8s"]}`,
			wantScore: 85,
		},
		{
			name:      "fenced json",
			raw:       "```json\n{\"score\": 42, \"feedback\": \"weak\"}\n```",
			wantScore: 42,
		},
		{
			name:      "json with prose around it",
			raw:       "Here is my evaluation:\n{\"score\": 70, \"feedback\": \"ok\"}\nLet me know!",
			wantScore: 70,
		},
		{
			name:      "score above range is clamped",
			raw:       `{"score": 150, "feedback": "x"}`,
			wantScore: 100,
		},
		{
			name:      "negative score is clamped",
			raw:       `{"score": -5, "feedback": "x"}`,
			wantScore: 0,
		},
		{
			name:    "no score field",
			raw:     `{"feedback": "no score here"}`,
			wantErr: true,
		},
		{
			name:    "not json at all",
			raw:     "I cannot help with that.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScoreResponse(tt.raw)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrNoScoreInResponse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, got.Score)
		})
	}
}

func TestScore_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "Senior Go engineer")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"score\": 77, \"feedback\": \"good fit\", \"strengths\": [\"golang\"], \"gaps\": []}"}}]}`))
	}))
	defer srv.Close()

	llm := openai.NewClient(srv.URL, "test-key", "gpt-4o-mini")
	svc := NewResumeService(llm, zap.NewNop())

	score, err := svc.Score(context.Background(), "10 years of Go experience", "Senior Go engineer")
	require.NoError(t, err)
	assert.Equal(t, 77, score.Score)
	assert.Equal(t, "good fit", score.Feedback)
	assert.Equal(t, []string{"golang"}, score.Strengths)
}

func TestScore_EmptyInput(t *testing.T) {
	svc := NewResumeService(nil, zap.NewNop())

	_, err := svc.Score(context.Background(), "", "job")
	assert.Error(t, err)

	_, err = svc.Score(context.Background(), "resume", "  ")
	assert.Error(t, err)
}

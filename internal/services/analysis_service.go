package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"

	"github.com/bittenrichard/30-07/internal/models"
)

const resumePrompt = `
You are an expert technical recruiter. Analyze the resume below for the given job posting.

### INSTRUCTIONS:
1. **Score** the candidate from 0 to 100 against the required and desired qualifications.
2. **Summarize** the candidate in 3-4 sentences, in Brazilian Portuguese, focused on fit for the role.
3. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "score": 85,
    "resumo": "Resumo do candidato em português."
}

### JOB POSTING:
Title: %s
Required: %s
Desired: %s

### RESUME:
%s
`

// AnalysisService fills a candidate's score and AI summary from resume
// text using Gemini.
type AnalysisService struct {
	client llms.Model
	store  RowStore
	log    *zap.Logger
}

// NewAnalysisService initializes the Gemini client. Callers should skip
// construction entirely when no API key is configured.
func NewAnalysisService(ctx context.Context, apiKey string, store RowStore, log *zap.Logger) (*AnalysisService, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &AnalysisService{client: llm, store: store, log: log}, nil
}

// AnalyzeCandidate scores resumeText against the job posting (when given)
// and persists score + resumo_ia on the candidate row.
func (s *AnalysisService) AnalyzeCandidate(ctx context.Context, candidateID, jobID int, resumeText string) (*models.CandidateRow, error) {
	var job models.JobRow
	if jobID != 0 {
		if err := s.store.GetRow(ctx, models.JobsTable, jobID, &job); err != nil {
			return nil, fmt.Errorf("load job %d: %w", jobID, err)
		}
	}

	if len(resumeText) > 20000 {
		resumeText = resumeText[:20000]
	}
	prompt := fmt.Sprintf(resumePrompt,
		job.Titulo, job.RequisitosObrigatorios, job.RequisitosDesejaveis, resumeText)

	raw, err := llms.GenerateFromSinglePrompt(ctx, s.client, prompt)
	if err != nil {
		return nil, fmt.Errorf("resume analysis: %w", err)
	}

	var result struct {
		Score  int    `json:"score"`
		Resumo string `json:"resumo"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		s.log.Warn("resume analysis: unparseable model output", zap.String("raw", raw))
		return nil, fmt.Errorf("parse analysis output: %w", err)
	}

	var updated models.CandidateRow
	fields := map[string]any{"score": result.Score, "resumo_ia": result.Resumo}
	if err := s.store.UpdateRow(ctx, models.CandidatesTable, candidateID, fields, &updated); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}
	return &updated, nil
}

// stripCodeFence tolerates models that fence their JSON despite the
// prompt saying not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

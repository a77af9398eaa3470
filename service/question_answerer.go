package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aashish23092/expense-insights/client/llm"
)

// QuestionAnswerer answers a question from a passage of text.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question, passage string) (string, error)
}

const extractiveQAPrompt = `You answer questions about an invoice summary.
Reply with the shortest span of the summary that answers the question, copied exactly.
If the summary does not contain the answer, reply with "Not Found". Do not add any other words.`

// LLMQuestionAnswerer asks an LLM for an extractive answer.
type LLMQuestionAnswerer struct {
	provider llm.LLMProvider
}

func NewLLMQuestionAnswerer(provider llm.LLMProvider) *LLMQuestionAnswerer {
	return &LLMQuestionAnswerer{provider: provider}
}

func (qa *LLMQuestionAnswerer) Answer(ctx context.Context, question, passage string) (string, error) {
	userMessage := fmt.Sprintf("Summary:\n%s\n\nQuestion: %s", passage, question)

	answer, err := qa.provider.GenerateResponse(ctx, extractiveQAPrompt, userMessage)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUpstream, qa.provider.GetProviderName(), err)
	}
	return strings.Trim(strings.TrimSpace(answer), `"`), nil
}

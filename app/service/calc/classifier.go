package calc

import (
	"context"
	"intentbot/app/client/llm"
	"log/slog"
	"strings"

	_ "embed"
)

//go:embed classify_prompt.txt
var classifyPromptTemplate string

type Classifier struct {
	llm llm.Completer
}

func NewClassifier(completer llm.Completer) *Classifier {
	return &Classifier{llm: completer}
}

// Classify never fails: a model error degrades to ECHO.
func (c *Classifier) Classify(ctx context.Context, text string) Label {
	prompt := strings.ReplaceAll(classifyPromptTemplate, "{text}", text)

	raw, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "LLM error", "error", err)
		return LabelEcho
	}

	label := ParseLabel(raw)
	slog.DebugContext(ctx, "LLM response", "raw", raw, "label", label)

	return label
}

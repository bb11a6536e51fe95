package catalog

import (
	"context"
	"encoding/json"
	"intentbot/app/client/llm"
	"log/slog"
	"strings"

	_ "embed"
)

//go:embed classify_prompt.txt
var classifyPromptTemplate string

type classifierResponse struct {
	Actions []*Action `json:"actions"`
}

// ParseActions decodes the model's {"actions": [...]} answer. Anything that does not
// parse counts as no actions.
func ParseActions(raw string) []Action {
	var response classifierResponse
	if err := json.Unmarshal([]byte(llm.Cleanup(raw)), &response); err != nil {
		slog.Warn("Failed to parse classifier response", "error", err)
		return []Action{}
	}

	actions := make([]Action, 0, len(response.Actions))
	for _, action := range response.Actions {
		// null entries carry nothing to dispatch
		if action != nil {
			actions = append(actions, *action)
		}
	}

	return actions
}

type Classifier struct {
	llm llm.Completer
}

func NewClassifier(completer llm.Completer) *Classifier {
	return &Classifier{llm: completer}
}

// Classify never fails: a model error degrades to an empty action list.
func (c *Classifier) Classify(ctx context.Context, text string) []Action {
	prompt := strings.ReplaceAll(classifyPromptTemplate, "{text}", text)

	raw, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "LLM error", "error", err)
		return []Action{}
	}

	actions := ParseActions(raw)
	slog.DebugContext(ctx, "LLM response", "raw", raw, "actions", actions)

	return actions
}

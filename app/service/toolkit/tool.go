package toolkit

import (
	"context"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/tools"
)

var _ tools.Tool = (*Tool)(nil)

type Tool struct {
	name        string
	description string
	call        func(ctx context.Context, input string) (string, error)
}

func New(name, description string, call func(ctx context.Context, input string) (string, error)) *Tool {
	return &Tool{
		name:        name,
		description: description,
		call:        call,
	}
}

func (m *Tool) Name() string {
	return m.name
}

func (m *Tool) Description() string {
	return m.description
}

func (m *Tool) Call(ctx context.Context, input string) (string, error) {
	return m.call(ctx, input)
}

// Invoke calls tool and reports start, end and failure to handler, which may be nil.
func Invoke(ctx context.Context, handler callbacks.Handler, tool tools.Tool, input string) (string, error) {
	if handler != nil {
		handler.HandleToolStart(ctx, tool.Name()+": "+input)
	}

	output, err := tool.Call(ctx, input)
	if err != nil {
		if handler != nil {
			handler.HandleToolError(ctx, err)
		}
		return "", err
	}

	if handler != nil {
		handler.HandleToolEnd(ctx, output)
	}

	return output, nil
}

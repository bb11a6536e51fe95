package calc

import (
	"context"
	"fmt"
	"intentbot/app/client/llm"
	"intentbot/app/service/toolkit"
	"intentbot/app/service/turn"

	"github.com/samber/do"
	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/tools"
)

var _ turn.Pipeline = (*Service)(nil)

// Router is a total map from label to tool; unknown labels get echo.
type Router struct {
	routes   map[Label]tools.Tool
	fallback tools.Tool
}

func NewRouter() *Router {
	return &Router{
		routes: map[Label]tools.Tool{
			LabelAdd:      AddTool(),
			LabelSubtract: SubtractTool(),
			LabelMultiply: MultiplyTool(),
		},
		fallback: EchoTool(),
	}
}

func (r *Router) Route(label Label) tools.Tool {
	if tool, ok := r.routes[label]; ok {
		return tool
	}

	return r.fallback
}

type Service struct {
	classifier *Classifier
	router     *Router
	callbacks  callbacks.Handler
}

func New(di *do.Injector) (*Service, error) {
	return NewService(do.MustInvoke[*llm.Client](di)), nil
}

func NewService(completer llm.Completer) *Service {
	return &Service{
		classifier: NewClassifier(completer),
		router:     NewRouter(),
		callbacks:  toolkit.LogCallbackHandler{},
	}
}

// Run classifies the input, routes the label and runs the selected tool.
// The result is always completed.
func (s *Service) Run(ctx context.Context, state *turn.State) (turn.Result, error) {
	label := s.classifier.Classify(ctx, state.Input)
	state.Classification = label

	output, err := toolkit.Invoke(ctx, s.callbacks, s.router.Route(label), state.Input)
	if err != nil {
		return turn.Result{}, fmt.Errorf("tool %s: %w", label, err)
	}

	state.Result = turn.Completed(output)

	return state.Result, nil
}

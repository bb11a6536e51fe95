package catalog

import (
	"context"
	"intentbot/app/client/downstream"
	"intentbot/app/client/llm"
	"intentbot/app/service/toolkit"
	"intentbot/app/service/turn"

	"github.com/samber/do"
)

const Greeting = "Siebel Product Model Assistant (type 'exit' or 'quit' to stop)"

var _ turn.Pipeline = (*Service)(nil)

type Service struct {
	classifier *Classifier
	dispatcher *Dispatcher
	index      *ProductIndex
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*llm.Client](di),
		do.MustInvoke[*downstream.Printer](di),
	), nil
}

func NewService(completer llm.Completer, printer *downstream.Printer) *Service {
	index := NewProductIndex()

	return &Service{
		classifier: NewClassifier(completer),
		dispatcher: NewDispatcher(NewHandlers(index, printer), toolkit.LogCallbackHandler{}),
		index:      index,
	}
}

// Index is the session's name to product id table.
func (s *Service) Index() *ProductIndex {
	return s.index
}

// Run classifies the input once per turn and dispatches the actions. Repeated runs
// of the same state during field repair reuse the stored classification.
func (s *Service) Run(ctx context.Context, state *turn.State) (turn.Result, error) {
	if state.Classification == nil {
		state.Classification = s.classifier.Classify(ctx, state.Input)
	}

	result, err := s.dispatcher.Dispatch(ctx, state)
	if err != nil {
		return turn.Result{}, err
	}

	state.Result = result

	return result, nil
}

package catalog

import (
	"context"
	"fmt"
	"intentbot/app/service/turn"
	"strings"

	"github.com/tmc/langchaingo/callbacks"
)

type Dispatcher struct {
	handlers  map[ActionType]Handler
	callbacks callbacks.Handler
}

func NewDispatcher(handlers []Handler, cb callbacks.Handler) *Dispatcher {
	table := make(map[ActionType]Handler, len(handlers))
	for _, h := range handlers {
		table[h.Type()] = h
	}

	return &Dispatcher{
		handlers:  table,
		callbacks: cb,
	}
}

// Dispatch runs the classified actions of state in order. It stops at the first
// action that needs fields; actions finished before it are recorded on state and
// are not run again when the turn is repeated.
func (d *Dispatcher) Dispatch(ctx context.Context, state *turn.State) (turn.Result, error) {
	actions, _ := state.Classification.([]Action)
	if len(actions) == 0 {
		return turn.Completed("You said: " + state.Input), nil
	}

	if state.Completed == nil {
		state.Completed = make(map[int]string)
	}

	results := make([]string, 0, len(actions))

	for i, action := range actions {
		if done, ok := state.Completed[i]; ok {
			results = append(results, done)
			continue
		}

		handler, ok := d.handlers[action.Type]
		if !ok {
			state.Completed[i] = fmt.Sprintf("Unknown action: %s", action.Type)
			results = append(results, state.Completed[i])
			continue
		}

		result, err := d.invoke(ctx, handler, fillFields(action, handler.Fields(), state))
		if err != nil {
			return turn.Result{}, fmt.Errorf("%s: %w", handler.Name(), err)
		}

		if !result.Done() {
			return result, nil
		}

		// repair values belong to the action that asked for them
		state.ClearFields()

		state.Completed[i] = result.Value()
		results = append(results, result.Value())
	}

	return turn.Completed(strings.Join(results, "\n")), nil
}

func (d *Dispatcher) invoke(ctx context.Context, handler Handler, action Action) (turn.Result, error) {
	if d.callbacks != nil {
		d.callbacks.HandleToolStart(ctx, fmt.Sprintf("%s: %+v", handler.Name(), action))
	}

	result, err := handler.Handle(ctx, action)
	if err != nil {
		if d.callbacks != nil {
			d.callbacks.HandleToolError(ctx, err)
		}
		return turn.Result{}, err
	}

	if d.callbacks != nil {
		d.callbacks.HandleToolEnd(ctx, result.Sentinel())
	}

	return result, nil
}

// fillFields fills the action's empty fields from values supplied during repair.
func fillFields(action Action, fields []Field, state *turn.State) Action {
	for _, field := range fields {
		if action.Get(field.Key) != "" {
			continue
		}

		if value := state.Field(field.Label); value != "" {
			action.Set(field.Key, value)
		}
	}

	return action
}

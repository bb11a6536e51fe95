package session

import (
	"context"
	"errors"
	"fmt"
	"intentbot/app/service/turn"
	"intentbot/app/util/console"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/elliotchance/pie/v2"
)

const farewell = "Goodbye!"

type Service struct {
	pipeline  turn.Pipeline
	console   *console.Console
	exitWords []string
	greeting  string
	banner    string
}

type Option func(*Service)

func WithGreeting(greeting string) Option {
	return func(s *Service) {
		s.greeting = greeting
	}
}

// WithBanner prints text dimmed before the greeting.
func WithBanner(text string) Option {
	return func(s *Service) {
		s.banner = text
	}
}

func WithExitWords(words ...string) Option {
	return func(s *Service) {
		s.exitWords = pie.Map(words, strings.ToLower)
	}
}

func New(pipeline turn.Pipeline, c *console.Console, opts ...Option) *Service {
	s := &Service{
		pipeline:  pipeline,
		console:   c,
		exitWords: []string{"exit", "quit"},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run reads one line per turn until an exit word or the end of input.
func (s *Service) Run(ctx context.Context) error {
	if s.banner != "" {
		s.console.Hint(s.banner)
	}
	if s.greeting != "" {
		s.console.Println(s.greeting)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.console.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if s.isExit(line) {
			s.console.Println(farewell)
			return nil
		}

		if err = s.runTurn(ctx, turn.NewState(line)); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// runTurn runs state until it completes, asking for missing fields in between.
func (s *Service) runTurn(ctx context.Context, state *turn.State) error {
	start := time.Now()

	for {
		result, err := s.pipeline.Run(ctx, state)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			slog.ErrorContext(ctx, "Turn failed", "input", state.Input, "error", err)
			s.console.Reply(fmt.Sprintf("Sorry, I couldn't complete that: %v", err))
			return nil
		}

		if result.Done() {
			s.console.Reply(result.Value())

			slog.Debug("Processed turn",
				"input", state.Input,
				"duration", time.Since(start))

			return nil
		}

		slog.Debug("Turn needs fields", "missing", result.Missing())

		if err = s.collectFields(state, result.Missing()); err != nil {
			return err
		}
	}
}

func (s *Service) collectFields(state *turn.State, labels []string) error {
	for _, label := range labels {
		value, err := s.console.Ask(fmt.Sprintf("Please provide %s: ", label))
		if err != nil {
			return err
		}

		state.SetField(label, strings.TrimSpace(value))
	}

	return nil
}

func (s *Service) isExit(line string) bool {
	return pie.Contains(s.exitWords, strings.ToLower(strings.TrimSpace(line)))
}

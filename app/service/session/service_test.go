package session

import (
	"bytes"
	"context"
	"errors"
	"intentbot/app/client/downstream"
	"intentbot/app/service/calc"
	"intentbot/app/service/catalog"
	"intentbot/app/service/turn"
	"intentbot/app/util/console"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	answers []string
}

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	if len(f.answers) == 0 {
		return "", errors.New("no answer queued")
	}

	answer := f.answers[0]
	f.answers = f.answers[1:]

	return answer, nil
}

type pipelineFunc func(ctx context.Context, state *turn.State) (turn.Result, error)

func (f pipelineFunc) Run(ctx context.Context, state *turn.State) (turn.Result, error) {
	return f(ctx, state)
}

func run(t *testing.T, pipeline turn.Pipeline, input string, opts ...Option) string {
	t.Helper()

	var out bytes.Buffer
	svc := New(pipeline, console.New(strings.NewReader(input), &out), opts...)

	require.NoError(t, svc.Run(context.Background()))

	return out.String()
}

func TestSession_CalcTurns(t *testing.T) {
	completer := &fakeCompleter{answers: []string{"ADD", "ECHO"}}

	out := run(t, calc.NewService(completer), "add 3 apples and 5 oranges and 10 bananas\nhello\nquit\n")

	assert.Contains(t, out, "Bot: The sum of 3 and 5 is 8.\n")
	assert.Contains(t, out, "Bot: You said: hello\n")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestSession_LongLineKeepsLooping(t *testing.T) {
	completer := &fakeCompleter{answers: []string{"ADD", "ADD"}}
	input := "add 1 and 2 " + strings.Repeat("x", 70*1024) + "\nadd 3 4\nexit\n"

	out := run(t, calc.NewService(completer), input)

	assert.Contains(t, out, "Bot: The sum of 1 and 2 is 3.\n")
	assert.Contains(t, out, "Bot: The sum of 3 and 4 is 7.\n")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestSession_ExitIsCaseInsensitive(t *testing.T) {
	calls := 0
	pipeline := pipelineFunc(func(_ context.Context, _ *turn.State) (turn.Result, error) {
		calls++
		return turn.Completed("unused"), nil
	})

	out := run(t, pipeline, "EXIT\nadd 1 2\n")

	assert.Equal(t, 0, calls)
	assert.Contains(t, out, "Goodbye!")
}

func TestSession_CustomExitWords(t *testing.T) {
	pipeline := pipelineFunc(func(_ context.Context, state *turn.State) (turn.Result, error) {
		return turn.Completed("echo " + state.Input), nil
	})

	out := run(t, pipeline, "quit\nBye\n", WithExitWords("Bye"), WithGreeting("Welcome"))

	assert.True(t, strings.HasPrefix(out, "Welcome\n"))
	assert.Contains(t, out, "Bot: echo quit\n")
	assert.Contains(t, out, "Goodbye!")
}

func TestSession_BannerBeforeGreeting(t *testing.T) {
	pipeline := pipelineFunc(func(_ context.Context, _ *turn.State) (turn.Result, error) {
		return turn.Completed("unused"), nil
	})

	out := run(t, pipeline, "exit\n", WithBanner("graph TD"), WithGreeting("Welcome"))

	assert.Equal(t, "graph TD\nWelcome\nYou: Goodbye!\n", out)
}

func TestSession_EndOfInput(t *testing.T) {
	pipeline := pipelineFunc(func(_ context.Context, state *turn.State) (turn.Result, error) {
		return turn.Completed("ok"), nil
	})

	out := run(t, pipeline, "one line\n")

	assert.Contains(t, out, "Bot: ok\n")
	assert.NotContains(t, out, "Goodbye!")
}

func TestSession_MissingFieldRepair(t *testing.T) {
	completer := &fakeCompleter{answers: []string{
		`{"actions": [{"type": "CREATEPRODUCT", "name": "Widget"}, {"type": "CREATEPRICELIST", "name": "NA", "product": "Widget"}]}`,
	}}
	var rest bytes.Buffer
	svc := catalog.NewService(completer, downstream.NewPrinter(&rest))

	out := run(t, svc, "create Widget with a price list NA\n1000\n\nUSD\nexit\n")

	assert.Contains(t, out, "Please provide Price: ")
	assert.Equal(t, 2, strings.Count(out, "Please provide Currency Code: "))
	assert.Contains(t, out, `"Price": "1000"`)
	assert.Contains(t, out, `"Currency": "USD"`)

	id, ok := svc.Index().Lookup("Widget")
	require.True(t, ok)
	assert.Contains(t, out, `"ProductId": "`+id+`"`)
	assert.Equal(t, 1, strings.Count(rest.String(), "Sample REST request for product creation:"))
	assert.NotContains(t, out, "MISSING_FIELDS")
}

func TestSession_RepairKeepsEarlierFields(t *testing.T) {
	var seen []map[string]string

	pipeline := pipelineFunc(func(_ context.Context, state *turn.State) (turn.Result, error) {
		snapshot := make(map[string]string, len(state.Fields))
		for k, v := range state.Fields {
			snapshot[k] = v
		}
		seen = append(seen, snapshot)

		switch {
		case state.Field("Price") == "":
			return turn.NeedsFields("Price", "Currency Code"), nil
		case state.Field("Currency Code") == "":
			return turn.NeedsFields("Currency Code"), nil
		default:
			return turn.Completed("priced"), nil
		}
	})

	out := run(t, pipeline, "price it\n10\n\nEUR\n")

	assert.Contains(t, out, "Bot: priced\n")
	require.Len(t, seen, 3)
	assert.Equal(t, map[string]string{"price": "10", "currency_code": "EUR"}, seen[2])
}

func TestSession_PipelineErrorDegrades(t *testing.T) {
	pipeline := pipelineFunc(func(_ context.Context, _ *turn.State) (turn.Result, error) {
		return turn.Result{}, errors.New("printer closed")
	})

	out := run(t, pipeline, "create Widget\nexit\n")

	assert.Contains(t, out, "Bot: Sorry, I couldn't complete that: printer closed\n")
	assert.Contains(t, out, "Goodbye!")
}

func TestSession_EOFDuringRepair(t *testing.T) {
	pipeline := pipelineFunc(func(_ context.Context, _ *turn.State) (turn.Result, error) {
		return turn.NeedsFields("Product Name"), nil
	})

	out := run(t, pipeline, "create a product\n")

	assert.Contains(t, out, "Please provide Product Name: ")
}

func TestSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := New(pipelineFunc(func(_ context.Context, _ *turn.State) (turn.Result, error) {
		return turn.Completed("x"), nil
	}), console.New(strings.NewReader("hello\n"), &bytes.Buffer{}))

	assert.ErrorIs(t, svc.Run(ctx), context.Canceled)
}

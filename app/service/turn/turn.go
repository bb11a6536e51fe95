package turn

import (
	"context"
	"strings"
)

const sentinelPrefix = "MISSING_FIELDS:"

// Pipeline runs one classify, route and handle pass over a turn.
type Pipeline interface {
	Run(ctx context.Context, state *State) (Result, error)
}

// State is the context of a single turn. The session loop re-runs the same State
// while it collects missing fields, so everything a re-run needs lives here.
type State struct {
	Input string

	// Classification is the last classifier output, nil until the first pass.
	Classification any

	// Fields holds values supplied during field repair, keyed by NormalizeKey(label).
	Fields map[string]string

	// Completed holds results of batch entries that already finished, by index.
	Completed map[int]string

	Result Result
}

func NewState(input string) *State {
	return &State{
		Input:     input,
		Fields:    make(map[string]string),
		Completed: make(map[int]string),
	}
}

func (s *State) SetField(label, value string) {
	if s.Fields == nil {
		s.Fields = make(map[string]string)
	}

	s.Fields[NormalizeKey(label)] = value
}

func (s *State) Field(label string) string {
	return s.Fields[NormalizeKey(label)]
}

func (s *State) ClearFields() {
	clear(s.Fields)
}

// Result is either completed with a value or blocked on missing fields.
type Result struct {
	value   string
	missing []string
}

func Completed(value string) Result {
	return Result{value: value}
}

func NeedsFields(labels ...string) Result {
	return Result{missing: labels}
}

func (r Result) Done() bool {
	return len(r.missing) == 0
}

func (r Result) Value() string {
	return r.value
}

func (r Result) Missing() []string {
	return r.missing
}

// Sentinel renders the result in the legacy MISSING_FIELDS:<a>,<b> encoding.
func (r Result) Sentinel() string {
	if r.Done() {
		return r.value
	}

	return sentinelPrefix + strings.Join(r.missing, ",")
}

func (r Result) String() string {
	return r.Sentinel()
}

// NormalizeKey turns a field label like "Currency Code" into "currency_code".
func NormalizeKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}

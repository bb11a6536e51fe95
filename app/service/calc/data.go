package calc

import (
	"strings"

	"github.com/elliotchance/pie/v2"
)

type Label string

const (
	LabelAdd      Label = "ADD"
	LabelSubtract Label = "SUBTRACT"
	LabelMultiply Label = "MULTIPLY"
	LabelEcho     Label = "ECHO"
)

// prefix match order
var operationLabels = []Label{LabelAdd, LabelSubtract, LabelMultiply}

// ParseLabel maps raw model output to a label. Anything unrecognised is ECHO.
func ParseLabel(raw string) Label {
	text := strings.ToUpper(strings.TrimSpace(raw))

	index := pie.FindFirstUsing(operationLabels, func(label Label) bool {
		return strings.HasPrefix(text, string(label))
	})
	if index < 0 {
		return LabelEcho
	}

	return operationLabels[index]
}

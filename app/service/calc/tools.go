package calc

import (
	"context"
	"fmt"
	"intentbot/app/service/toolkit"
	"math/big"

	"github.com/tmc/langchaingo/tools"
)

func newArithmeticTool(
	name, description, verb string,
	compute func(a, b *big.Int) *big.Int,
	format func(a, b, result *big.Int) string,
) tools.Tool {
	return toolkit.New(name, description, func(_ context.Context, input string) (string, error) {
		a, b, ok := FirstTwoNumbers(input)
		if !ok {
			return fmt.Sprintf("I couldn't find two numbers to %s.", verb), nil
		}

		return format(a, b, compute(a, b)), nil
	})
}

func AddTool() tools.Tool {
	return newArithmeticTool(
		"add_two_numbers",
		"Add the first two numbers found in the text.",
		"add",
		func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) },
		func(a, b, result *big.Int) string {
			return fmt.Sprintf("The sum of %s and %s is %s.", a, b, result)
		},
	)
}

func SubtractTool() tools.Tool {
	return newArithmeticTool(
		"subtract_two_numbers",
		"Subtract the second number from the first number found in the text.",
		"subtract",
		func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) },
		func(a, b, result *big.Int) string {
			return fmt.Sprintf("The difference when subtracting %s from %s is %s.", b, a, result)
		},
	)
}

func MultiplyTool() tools.Tool {
	return newArithmeticTool(
		"multiply_two_numbers",
		"Multiply the first two numbers found in the text.",
		"multiply",
		func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) },
		func(a, b, result *big.Int) string {
			return fmt.Sprintf("The product of %s and %s is %s.", a, b, result)
		},
	)
}

func EchoTool() tools.Tool {
	return toolkit.New("echo", "Repeat the user's text back.", func(_ context.Context, input string) (string, error) {
		return "You said: " + input, nil
	})
}

// Tools lists the arithmetic tools, without echo.
func Tools() []tools.Tool {
	return []tools.Tool{AddTool(), SubtractTool(), MultiplyTool()}
}

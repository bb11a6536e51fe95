package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Console is the line-oriented terminal boundary: one reader, one writer.
// Styling is decided by the writer, so output to pipes and buffers stays plain.
type Console struct {
	reader *bufio.Reader
	out    io.Writer

	userLabel lipgloss.Style
	botLabel  lipgloss.Style
	hint      lipgloss.Style
}

func New(in io.Reader, out io.Writer) *Console {
	renderer := lipgloss.NewRenderer(out)

	return &Console{
		reader:    bufio.NewReader(in),
		out:       out,
		userLabel: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		botLabel:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		hint:      renderer.NewStyle().Faint(true),
	}
}

// ReadLine prompts with "You: " and returns the next line, or io.EOF when input ends.
func (c *Console) ReadLine() (string, error) {
	return c.read(c.userLabel.Render("You:") + " ")
}

// Ask prompts for a single value.
func (c *Console) Ask(prompt string) (string, error) {
	return c.read(prompt)
}

func (c *Console) read(prompt string) (string, error) {
	if _, err := fmt.Fprint(c.out, prompt); err != nil {
		return "", err
	}

	// lines have no length limit; a final line without newline still counts
	line, err := c.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) Reply(text string) {
	_, _ = fmt.Fprintf(c.out, "%s %s\n", c.botLabel.Render("Bot:"), text)
}

func (c *Console) Hint(text string) {
	_, _ = fmt.Fprintln(c.out, c.hint.Render(text))
}

func (c *Console) Println(text string) {
	_, _ = fmt.Fprintln(c.out, text)
}

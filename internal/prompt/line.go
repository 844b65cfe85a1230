package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/typings-labs/gentypings/internal/ui"
)

// LinePrompter implements Prompter over line-oriented input, one answer per
// line.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter reads answers from r and writes questions to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// readLine returns the next trimmed line. A final line without a newline is
// still an answer; EOF with nothing read is ErrAborted.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			fmt.Fprintln(p.w)
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *LinePrompter) ask(message, hint string) {
	fmt.Fprintf(p.w, "%s %s", ui.Green("?"), ui.Bold(message))
	if hint != "" {
		fmt.Fprintf(p.w, " %s", ui.Faint("("+hint+")"))
	}
	fmt.Fprint(p.w, " ")
}

func (p *LinePrompter) reject(err error) {
	fmt.Fprintf(p.w, "%s %s\n", ui.Red(">>"), err)
}

// Input asks for free text.
func (p *LinePrompter) Input(q Question) (string, error) {
	for {
		p.ask(q.Message, q.Default)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = q.Default
		}
		if q.Validate != nil {
			if verr := q.Validate(answer); verr != nil {
				p.reject(verr)
				continue
			}
		}
		return answer, nil
	}
}

// Confirm asks a yes/no question.
func (p *LinePrompter) Confirm(q Question, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		p.ask(q.Message, hint)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.reject(fmt.Errorf("please answer y or n"))
	}
}

// Select asks the user to pick one of choices, by number or by value.
func (p *LinePrompter) Select(q Question, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("prompt %q has no choices", q.Name)
	}

	defIdx := -1
	for i, c := range choices {
		if c.Value == q.Default {
			defIdx = i
		}
	}

	for {
		fmt.Fprintf(p.w, "%s %s\n", ui.Green("?"), ui.Bold(q.Message))
		for i, c := range choices {
			marker := " "
			if i == defIdx {
				marker = ui.Cyan(">")
			}
			fmt.Fprintf(p.w, " %s %d) %s\n", marker, i+1, c.Name)
		}
		hint := fmt.Sprintf("1-%d", len(choices))
		if defIdx >= 0 {
			hint = fmt.Sprintf("1-%d, default %d", len(choices), defIdx+1)
		}
		p.ask("Answer", hint)

		answer, err := p.readLine()
		if err != nil {
			return "", err
		}

		idx := -1
		switch {
		case answer == "" && defIdx >= 0:
			idx = defIdx
		case answer != "":
			if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(choices) {
				idx = n - 1
			}
			for i, c := range choices {
				if c.Value == answer {
					idx = i
				}
			}
		}
		if idx < 0 {
			p.reject(fmt.Errorf("invalid selection %q: choose 1-%d", answer, len(choices)))
			continue
		}

		value := choices[idx].Value
		if q.Validate != nil {
			if verr := q.Validate(value); verr != nil {
				p.reject(verr)
				continue
			}
		}
		return value, nil
	}
}

// Package prompt asks the user blocking questions on a terminal. Each call
// returns only once the answer passes validation; invalid answers redisplay the
// question.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAborted is returned when input ends before a question is answered.
var ErrAborted = errors.New("prompt aborted: input closed")

// Question describes one prompt.
type Question struct {
	// Name identifies the prompt; remembered answers are stored under it.
	Name    string
	Message string
	// Default is used when the answer is empty. For Select it is the value of
	// the preselected choice.
	Default string
	// Validate rejects an answer by returning an error. It sees the answer
	// after the default has been applied.
	Validate func(string) error
}

// Choice is one entry of a Select prompt.
type Choice struct {
	Name  string
	Value string
}

// Prompter asks questions one at a time.
type Prompter interface {
	Input(q Question) (string, error)
	Confirm(q Question, def bool) (bool, error)
	Select(q Question, choices []Choice) (string, error)
}

// NonEmpty rejects blank answers.
func NonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a value is required")
	}
	return nil
}

// Package collector asks the generator's questions in order and builds the
// session configuration from the answers.
package collector

import (
	"fmt"
	"math/rand/v2"

	"github.com/typings-labs/gentypings/internal/license"
	"github.com/typings-labs/gentypings/internal/prompt"
	"github.com/typings-labs/gentypings/internal/session"
	"github.com/typings-labs/gentypings/internal/ui"
	"go.uber.org/zap"
)

// Prompt names. UsernamePrompt is also the key its answer is remembered under.
const (
	SourcePrompt        = "sourceUri"
	PublishedPrompt     = "isNpm"
	RegistryNamePrompt  = "npmName"
	AmbientPrompt       = "isAmbient"
	UsernamePrompt      = "username"
	LicensePrompt       = "license"
	LicenseAuthorPrompt = "name"
)

// SourceExamples are offered as the default source reference.
var SourceExamples = []string{
	"facebook/react",
	"atom/atom",
	"microsoft/vscode",
	"angular/angular",
}

// Memory keeps answers between runs.
type Memory interface {
	Remembered(prompt string) string
	Remember(prompt, answer string) error
}

// Answers pre-supplies values. A non-nil field skips its prompt; the value is
// still validated.
type Answers struct {
	Source        *string
	Published     *bool
	RegistryName  *string
	Ambient       *bool
	Username      *string
	License       *string
	LicenseAuthor *string
}

// Collector runs the question sequence.
type Collector struct {
	Prompter prompt.Prompter
	Memory   Memory
	Logger   *zap.Logger
	Answers  Answers

	// PickExample chooses the default source reference. Defaults to a random
	// pick from SourceExamples.
	PickExample func(examples []string) string
}

// New creates a Collector with a random example picker.
func New(p prompt.Prompter, mem Memory, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		Prompter: p,
		Memory:   mem,
		Logger:   logger,
		PickExample: func(examples []string) string {
			return examples[rand.IntN(len(examples))]
		},
	}
}

// Collect asks the seven questions in order. Later questions may be hidden or
// defaulted based on earlier answers.
func (c *Collector) Collect() (session.Config, error) {
	var b session.Builder

	steps := []func(*session.Builder) error{
		c.askSource,
		c.askPublished,
		c.askRegistryName,
		c.askAmbient,
		c.askUsername,
		c.askLicense,
		c.askLicenseAuthor,
	}
	for _, step := range steps {
		if err := step(&b); err != nil {
			return session.Config{}, err
		}
	}
	return b.Build()
}

func (c *Collector) input(q prompt.Question, preset *string) (string, error) {
	if preset == nil {
		return c.Prompter.Input(q)
	}
	if q.Validate != nil {
		if err := q.Validate(*preset); err != nil {
			return "", fmt.Errorf("%s: %w", q.Name, err)
		}
	}
	return *preset, nil
}

func (c *Collector) confirm(q prompt.Question, def bool, preset *bool) (bool, error) {
	if preset != nil {
		return *preset, nil
	}
	return c.Prompter.Confirm(q, def)
}

func (c *Collector) askSource(b *session.Builder) error {
	def := ""
	if c.PickExample != nil && len(SourceExamples) > 0 {
		def = c.PickExample(SourceExamples)
	}

	answer, err := c.input(prompt.Question{
		Name:    SourcePrompt,
		Message: fmt.Sprintf("What is the %s of the %s on github?", ui.Green("author/module"), ui.Red("source")),
		Default: def,
		Validate: func(s string) error {
			if err := prompt.NonEmpty(s); err != nil {
				return err
			}
			_, err := session.ParseRepoRef(s)
			return err
		},
	}, c.Answers.Source)
	if err != nil {
		return err
	}

	ref, err := session.ParseRepoRef(answer)
	if err != nil {
		return err
	}
	return b.Source(ref)
}

func (c *Collector) askPublished(b *session.Builder) error {
	answer, err := c.confirm(prompt.Question{
		Name:    PublishedPrompt,
		Message: "Is the source installable through NPM?",
	}, true, c.Answers.Published)
	if err != nil {
		return err
	}
	return b.Published(answer)
}

func (c *Collector) askRegistryName(b *session.Builder) error {
	if !b.IsPublished() {
		return nil
	}
	answer, err := c.input(prompt.Question{
		Name:     RegistryNamePrompt,
		Message:  "Name of the package on NPM is...",
		Default:  b.SourcePackageName(),
		Validate: prompt.NonEmpty,
	}, c.Answers.RegistryName)
	if err != nil {
		return err
	}
	return b.RegistryName(answer)
}

func (c *Collector) askAmbient(b *session.Builder) error {
	answer, err := c.confirm(prompt.Question{
		Name:    AmbientPrompt,
		Message: "Is this module ambient? i.e. does it declare itself globally?",
	}, false, c.Answers.Ambient)
	if err != nil {
		return err
	}
	return b.Ambient(answer)
}

func (c *Collector) askUsername(b *session.Builder) error {
	def := ""
	if c.Memory != nil {
		def = c.Memory.Remembered(UsernamePrompt)
	}

	answer, err := c.input(prompt.Question{
		Name:     UsernamePrompt,
		Message:  "And your GitHub username is...",
		Default:  def,
		Validate: prompt.NonEmpty,
	}, c.Answers.Username)
	if err != nil {
		return err
	}

	if c.Memory != nil {
		if err := c.Memory.Remember(UsernamePrompt, answer); err != nil {
			c.Logger.Warn("could not remember username", zap.Error(err))
		}
	}
	return b.Username(answer)
}

func (c *Collector) askLicense(b *session.Builder) error {
	q := prompt.Question{
		Name:    LicensePrompt,
		Message: "Which license do you want to use?",
		Default: string(license.DefaultID),
		Validate: func(s string) error {
			_, err := license.Parse(s)
			return err
		},
	}

	var answer string
	var err error
	if c.Answers.License != nil {
		answer, err = c.input(q, c.Answers.License)
	} else {
		all := license.All()
		choices := make([]prompt.Choice, len(all))
		for i, l := range all {
			choices[i] = prompt.Choice{Name: l.Name, Value: string(l.ID)}
		}
		answer, err = c.Prompter.Select(q, choices)
	}
	if err != nil {
		return err
	}
	return b.License(license.ID(answer))
}

func (c *Collector) askLicenseAuthor(b *session.Builder) error {
	answer, err := c.input(prompt.Question{
		Name:    LicenseAuthorPrompt,
		Message: "Name to use on the license?",
		Default: b.CurrentUsername(),
	}, c.Answers.LicenseAuthor)
	if err != nil {
		return err
	}
	return b.LicenseAuthor(answer)
}

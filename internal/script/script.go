// Package script reads push/pop scripts and replays them against a sheet
// stack. Scripts are YAML (or JSON, which YAML accepts) lists of steps:
//
//	- op: push
//	  content: settings
//	  options: {placement: left, size: 30}
//	- op: push
//	  content: details
//	  cover: {size: 20}
//	- op: pop
package script

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/sheets/internal/sheet"
)

// Op is a stack operation.
type Op string

const (
	OpPush Op = "push"
	OpPop  Op = "pop"
)

// Script errors.
var (
	ErrUnknownOp      = errors.New("op must be push or pop")
	ErrMissingContent = errors.New("push requires content")
	ErrPopArguments   = errors.New("pop takes no content, options or cover")
)

// Step is one operation in a script.
type Step struct {
	Op      Op            `yaml:"op" json:"op"`
	Content any           `yaml:"content,omitempty" json:"content,omitempty"`
	Options sheet.Partial `yaml:"options,omitempty" json:"options,omitempty"`
	Cover   sheet.Partial `yaml:"cover,omitempty" json:"cover,omitempty"`
}

// StepError reports which step of a script failed.
type StepError struct {
	Index int // 0-based
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Index+1, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Validate checks the op and the options of a step.
func (s Step) Validate() error {
	switch s.Op {
	case OpPush:
		if s.Content == nil {
			return ErrMissingContent
		}
		if err := s.Options.Validate(); err != nil {
			return fmt.Errorf("options: %w", err)
		}
		if err := s.Cover.Validate(); err != nil {
			return fmt.Errorf("cover: %w", err)
		}
	case OpPop:
		if s.Content != nil || !s.Options.IsZero() || !s.Cover.IsZero() {
			return ErrPopArguments
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
	}
	return nil
}

// Parse reads and validates a script. Op names are case-insensitive.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	if err := yaml.NewDecoder(r).Decode(&steps); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	for i := range steps {
		steps[i].Op = Op(strings.ToLower(strings.TrimSpace(string(steps[i].Op))))
		if err := steps[i].Validate(); err != nil {
			return nil, &StepError{Index: i, Err: err}
		}
	}
	return steps, nil
}

// Apply runs steps against s in order. after, if not nil, is called once
// each step has been applied. Steps are not validated here; Parse has
// already done that for scripts read from files.
func Apply(s *sheet.Stack, steps []Step, after func(i int, step Step)) error {
	for i, step := range steps {
		switch step.Op {
		case OpPush:
			s.Push(step.Content, step.Options, step.Cover)
		case OpPop:
			s.Pop()
		default:
			return &StepError{Index: i, Err: fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)}
		}
		if after != nil {
			after(i, step)
		}
	}
	return nil
}

// Package wizard models the interactive configuration flow as an explicit
// finite-state machine. The engine never depends on it; a front end drives
// it and calls the converter from whatever step it likes.
package wizard

import (
	"fmt"
)

// Step is one named state of the configuration flow.
type Step int

const (
	StepFileSelect Step = iota
	StepFormat
	StepPreview
	StepConfig
	StepMapping
	StepOptions
	StepBalancePreview
)

var stepNames = map[Step]string{
	StepFileSelect:     "FileSelect",
	StepFormat:         "Format",
	StepPreview:        "Preview",
	StepConfig:         "Config",
	StepMapping:        "Mapping",
	StepOptions:        "Options",
	StepBalancePreview: "BalancePreview",
}

// String returns the step name.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Guard validates that the current step's inputs allow advancing.
type Guard func() error

// Machine is the wizard state machine. Steps advance strictly in order;
// each forward transition runs the guard registered for the current step.
type Machine struct {
	step   Step
	guards map[Step]Guard
}

// New creates a machine positioned at the first step.
func New() *Machine {
	return &Machine{
		step:   StepFileSelect,
		guards: make(map[Step]Guard),
	}
}

// Step returns the current step.
func (m *Machine) Step() Step {
	return m.step
}

// SetGuard registers the validation run before leaving the given step.
func (m *Machine) SetGuard(step Step, guard Guard) {
	m.guards[step] = guard
}

// CanAdvance runs the current step's guard without moving.
func (m *Machine) CanAdvance() error {
	if guard, ok := m.guards[m.step]; ok && guard != nil {
		return guard()
	}
	return nil
}

// Next advances to the following step after the current guard passes.
func (m *Machine) Next() error {
	if m.step == StepBalancePreview {
		return fmt.Errorf("already at final step %s", m.step)
	}
	if err := m.CanAdvance(); err != nil {
		return fmt.Errorf("cannot leave step %s: %w", m.step, err)
	}
	m.step++
	return nil
}

// Back returns to the previous step. Going back never runs a guard.
func (m *Machine) Back() error {
	if m.step == StepFileSelect {
		return fmt.Errorf("already at first step %s", m.step)
	}
	m.step--
	return nil
}

// Reset returns the machine to the first step.
func (m *Machine) Reset() {
	m.step = StepFileSelect
}

// Done reports whether the machine reached the final step.
func (m *Machine) Done() bool {
	return m.step == StepBalancePreview
}

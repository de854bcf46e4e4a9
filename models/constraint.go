/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package models

import (
	"regexp"
	"strings"
)

// TimeConstraintType distinguishes the three constraint grammars.
type TimeConstraintType string

const (
	ConstraintWindow    TimeConstraintType = "window"
	ConstraintDeadline  TimeConstraintType = "deadline"
	ConstraintRecurring TimeConstraintType = "recurring"
)

// ConsequenceType names what happens when a constraint is missed.
type ConsequenceType string

const (
	ConsequenceSevere     ConsequenceType = "severe"
	ConsequenceWarning    ConsequenceType = "warn"
	ConsequenceEscalating ConsequenceType = "escalating"
)

// EscalationRate reuses the priority symbol scale for escalating
// consequences.
type EscalationRate string

const (
	EscalateLowest   EscalationRate = ",,,"
	EscalateLow      EscalationRate = "..."
	EscalateNeutral  EscalationRate = ""
	EscalateUnsure   EscalationRate = "?"
	EscalateMedium   EscalationRate = "!"
	EscalateHigh     EscalationRate = "!!"
	EscalateCritical EscalationRate = "!!!"
)

var validEscalationRates = map[EscalationRate]bool{
	EscalateLowest: true, EscalateLow: true, EscalateNeutral: true,
	EscalateUnsure: true, EscalateMedium: true, EscalateHigh: true,
	EscalateCritical: true,
}

// TimeConstraint is one window(...)/due(...)/every(...) call from the @@@
// section of an item line.
type TimeConstraint struct {
	Type            TimeConstraintType
	Duration        Duration
	GracePeriod     Duration
	ConsequenceType ConsequenceType
	EscalationRate  EscalationRate
	DueDate         string
	Stack           bool
}

var (
	windowPattern    = regexp.MustCompile(`^window\((\d+[a-z]+)(:\d+[a-z]+)?,([^)]+)\)$`)
	deadlinePattern  = regexp.MustCompile(`^due\((\d{4}-\d{2}-\d{2})(:\d+[a-z]+)?,([^)]+)\)$`)
	recurringPattern = regexp.MustCompile(`^every\((\d+[a-z]+)(:\d+[a-z]+)?,([^)]+)\)$`)

	// matches whole constraint calls inside the @@@ section
	constraintCallPattern = regexp.MustCompile(`(?:window|due|every)\([^)]*\)`)
)

// ParseTimeConstraint parses a single constraint call.
func ParseTimeConstraint(s string) (TimeConstraint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeConstraint{}, parseErr(ErrUnknownSymbol, s, "empty time constraint")
	}

	if m := windowPattern.FindStringSubmatch(s); m != nil {
		return buildDurationConstraint(ConstraintWindow, m[1], m[2], m[3], s)
	}

	if m := deadlinePattern.FindStringSubmatch(s); m != nil {
		tc := TimeConstraint{Type: ConstraintDeadline, DueDate: m[1]}
		if err := applyGrace(&tc, m[2]); err != nil {
			return TimeConstraint{}, err
		}
		if err := applyConsequence(&tc, m[3], s); err != nil {
			return TimeConstraint{}, err
		}
		return tc, nil
	}

	if m := recurringPattern.FindStringSubmatch(s); m != nil {
		consequence := m[3]
		stack := strings.Contains(consequence, "stack")
		consequence = strings.ReplaceAll(consequence, ",stack", "")
		tc, err := buildDurationConstraint(ConstraintRecurring, m[1], m[2], consequence, s)
		if err != nil {
			return TimeConstraint{}, err
		}
		tc.Stack = stack
		return tc, nil
	}

	return TimeConstraint{}, parseErr(ErrUnknownSymbol, s, "invalid time constraint format")
}

func buildDurationConstraint(kind TimeConstraintType, durStr, graceGroup, consequence, input string) (TimeConstraint, error) {
	dur, err := ParseDuration(durStr)
	if err != nil {
		return TimeConstraint{}, err
	}
	tc := TimeConstraint{Type: kind, Duration: dur}
	if err := applyGrace(&tc, graceGroup); err != nil {
		return TimeConstraint{}, err
	}
	if err := applyConsequence(&tc, consequence, input); err != nil {
		return TimeConstraint{}, err
	}
	return tc, nil
}

func applyGrace(tc *TimeConstraint, graceGroup string) error {
	if graceGroup == "" {
		return nil
	}
	grace, err := ParseDuration(strings.TrimPrefix(graceGroup, ":"))
	if err != nil {
		return err
	}
	tc.GracePeriod = grace
	return nil
}

// applyConsequence parses "severe", "warn", or "<base>,escalate:<rate>".
func applyConsequence(tc *TimeConstraint, s, input string) error {
	parts := strings.Split(s, ",")
	base := strings.TrimSpace(parts[0])

	if len(parts) > 1 && strings.HasPrefix(strings.TrimSpace(parts[1]), "escalate:") {
		rate := EscalationRate(strings.TrimPrefix(strings.TrimSpace(parts[1]), "escalate:"))
		if !validEscalationRates[rate] {
			return parseErr(ErrUnknownSymbol, input, "invalid escalation rate")
		}
		tc.ConsequenceType = ConsequenceEscalating
		tc.EscalationRate = rate
		return nil
	}

	switch ConsequenceType(base) {
	case ConsequenceSevere, ConsequenceWarning, ConsequenceEscalating:
		tc.ConsequenceType = ConsequenceType(base)
	default:
		return parseErr(ErrUnknownSymbol, input, "invalid consequence "+base)
	}
	return nil
}

// String renders the canonical call form.
func (tc TimeConstraint) String() string {
	var b strings.Builder
	switch tc.Type {
	case ConstraintWindow:
		b.WriteString("window(")
		b.WriteString(tc.Duration.String())
	case ConstraintDeadline:
		b.WriteString("due(")
		b.WriteString(tc.DueDate)
	case ConstraintRecurring:
		b.WriteString("every(")
		b.WriteString(tc.Duration.String())
	}
	if !tc.GracePeriod.IsZero() {
		b.WriteString(":")
		b.WriteString(tc.GracePeriod.String())
	}
	b.WriteString(",")
	b.WriteString(string(tc.ConsequenceType))
	if tc.EscalationRate != EscalateNeutral {
		b.WriteString(",escalate:")
		b.WriteString(string(tc.EscalationRate))
	}
	if tc.Type == ConstraintRecurring && tc.Stack {
		b.WriteString(",stack")
	}
	b.WriteString(")")
	return b.String()
}

// parseConstraintSection extracts every constraint call from an @@@ section.
func parseConstraintSection(s string) ([]TimeConstraint, error) {
	calls := constraintCallPattern.FindAllString(s, -1)
	if len(calls) == 0 && strings.TrimSpace(s) != "" {
		return nil, parseErr(ErrUnknownSymbol, s, "invalid time constraint section")
	}
	constraints := make([]TimeConstraint, 0, len(calls))
	for _, call := range calls {
		tc, err := ParseTimeConstraint(call)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, tc)
	}
	return constraints, nil
}

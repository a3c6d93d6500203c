package anomaly

import (
	"fmt"

	"production/internal/pkg/errs"
)

type Severity int

const (
	UnknownSeverity Severity = iota
	Low
	Medium
	High
)

var severityNames = map[Severity]string{
	Low:    "low",
	Medium: "medium",
	High:   "high",
}

func ParseSeverity(s string) (Severity, error) {
	for severity, name := range severityNames {
		if name == s {
			return severity, nil
		}
	}
	return UnknownSeverity, errs.NewValueIsInvalidErrorWithCause(
		"severity",
		fmt.Errorf("%q is not one of low, medium, high", s),
	)
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Severity) Validate() error {
	if _, ok := severityNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("severity", fmt.Errorf("%d is not a valid severity", s))
	}
	return nil
}

package kernel

import (
	"fmt"

	"production/internal/pkg/errs"
)

// ServiceStage is the manufacturing step a production line is undergoing.
//
// Stage progression:
//
//	Planning ──> Cutting ──> Services ──> Sewing ──> Finishing ──> Produced
//
// Produced is the terminal marker reached after finishing; it is never accepted
// as caller input.
type ServiceStage int

const (
	// UnknownStage catches uninitialized values.
	UnknownStage ServiceStage = iota
	StagePlanning
	StageCutting
	StageServices
	StageSewing
	StageFinishing
	StageProduced
)

var serviceStageNames = map[ServiceStage]string{
	StagePlanning:  "planning",
	StageCutting:   "cutting",
	StageServices:  "services",
	StageSewing:    "sewing",
	StageFinishing: "finishing",
	StageProduced:  "produced",
}

// InputServiceStages lists the stages callers may submit, in pipeline order.
func InputServiceStages() []ServiceStage {
	return []ServiceStage{StagePlanning, StageCutting, StageServices, StageSewing, StageFinishing}
}

// ParseServiceStage accepts every known stage including the terminal produced marker.
// Used when restoring persisted rows.
func ParseServiceStage(s string) (ServiceStage, error) {
	for stage, name := range serviceStageNames {
		if name == s {
			return stage, nil
		}
	}
	return UnknownStage, errs.NewValueIsInvalidErrorWithCause(
		"service_current",
		fmt.Errorf("%q is not a valid service stage", s),
	)
}

// ServiceStageFromInput parses a caller-supplied stage. The produced marker is rejected
// because it can only be reached through stage advancement.
func ServiceStageFromInput(s string) (ServiceStage, error) {
	stage, err := ParseServiceStage(s)
	if err != nil {
		return UnknownStage, err
	}
	if !stage.IsInFlight() {
		return UnknownStage, errs.NewValueIsInvalidErrorWithCause(
			"service_current",
			fmt.Errorf("%q cannot be set directly", s),
		)
	}
	return stage, nil
}

func (s ServiceStage) String() string {
	if name, ok := serviceStageNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ServiceStage) Validate() error {
	if _, ok := serviceStageNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("service stage is invalid", fmt.Errorf("%d is not a valid service stage", s))
	}
	return nil
}

// IsInFlight reports whether the stage is one of planning..finishing.
func (s ServiceStage) IsInFlight() bool {
	return s >= StagePlanning && s <= StageFinishing
}

// Next returns the successor stage. ok is false for Produced and for invalid stages.
func (s ServiceStage) Next() (next ServiceStage, ok bool) {
	if !s.IsInFlight() {
		return UnknownStage, false
	}
	return s + 1, true
}

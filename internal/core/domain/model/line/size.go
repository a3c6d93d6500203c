package line

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var ErrSizeIsNotConstructed = errors.New("Size must be created via NewSize constructor")

const maxSizeLabelLength = 16

// Size is the quantity breakdown of a line for one size label. The label is unique
// within its line, and rows are upserted by it.
type Size struct {
	id     kernel.UUID
	lineID kernel.UUID
	label  string
	qty    Quantities

	isConstructed bool
}

func NewSize(id, lineID kernel.UUID, label string, qty Quantities) (*Size, error) {
	s := &Size{isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setLineID(lineID),
		s.setLabel(label),
		qty.Validate(),
	); err != nil {
		return nil, err
	}
	s.qty = qty

	return s, nil
}

func (s *Size) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSizeIsNotConstructed
	}
	return nil
}

func (s *Size) ID() kernel.UUID {
	return s.id
}

func (s *Size) LineID() kernel.UUID {
	return s.lineID
}

func (s *Size) Label() string {
	return s.label
}

func (s *Size) Quantities() Quantities {
	return s.qty
}

// NormalizeSizeLabel trims a size label and checks its length.
func NormalizeSizeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", errs.NewValueIsRequiredError("size")
	}
	if len(label) > maxSizeLabelLength {
		return "", errs.NewValueIsOutOfRangeError("size length", len(label), 1, maxSizeLabelLength)
	}
	return label, nil
}

func (s *Size) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Size) setLineID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.lineID = id
	return nil
}

func (s *Size) setLabel(label string) error {
	label, err := NormalizeSizeLabel(label)
	if err != nil {
		return err
	}
	s.label = label
	return nil
}

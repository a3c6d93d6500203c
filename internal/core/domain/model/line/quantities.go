package line

import (
	"errors"
	"fmt"

	"production/internal/pkg/errs"
)

// Quantities are the piece counts tracked on lines and sizes. None may be negative.
type Quantities struct {
	Ordered   int
	ToProduce int
	Produced  int
	Defect    int
}

// NewQuantities applies the creation defaults: nothing produced or defective yet and
// toProduce falling back to ordered.
func NewQuantities(ordered int, toProduce *int) (Quantities, error) {
	q := Quantities{Ordered: ordered, ToProduce: ordered}
	if toProduce != nil {
		q.ToProduce = *toProduce
	}
	if err := q.Validate(); err != nil {
		return Quantities{}, err
	}
	return q, nil
}

func (q Quantities) Validate() error {
	return errors.Join(
		nonNegative("qty_ordered", q.Ordered),
		nonNegative("qty_to_produce", q.ToProduce),
		nonNegative("qty_produced", q.Produced),
		nonNegative("qty_defect", q.Defect),
	)
}

func nonNegative(name string, v int) error {
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is negative", v))
	}
	return nil
}

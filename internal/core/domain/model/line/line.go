package line

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var (
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")
)

const (
	maxArticleRefLength = 64
	maxColorLength      = 64
)

// Line is one article/colour of a production order, identified within the order by
// its 1-based seq and the code "{order code}.{seq}".
type Line struct {
	id             kernel.UUID
	orderID        kernel.UUID
	seq            int
	code           string
	articleRef     string
	color          string
	qty            Quantities
	serviceCurrent kernel.ServiceStage
	state          kernel.ProductionState
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// Code formats a line code from the owning order's code and the line seq.
func Code(orderCode string, seq int) string {
	return fmt.Sprintf("%s.%d", orderCode, seq)
}

// NewLine creates a line in the planning stage with state draft.
func NewLine(
	id, orderID kernel.UUID,
	orderCode string,
	seq int,
	articleRef, color string,
	qty Quantities,
	now time.Time,
) (*Line, error) {
	l := &Line{
		serviceCurrent: kernel.StagePlanning,
		state:          kernel.StateDraft,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setOrderID(orderID),
		l.setSequence(orderCode, seq),
		l.setArticleRef(articleRef),
		l.setColor(color),
		l.setQuantities(qty),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLine rebuilds a line from persistence.
func RestoreLine(
	id, orderID kernel.UUID,
	seq int,
	code, articleRef, color string,
	qty Quantities,
	serviceCurrent kernel.ServiceStage,
	state kernel.ProductionState,
	createdAt, updatedAt time.Time,
) (*Line, error) {
	l := &Line{
		seq:            seq,
		code:           code,
		color:          color,
		serviceCurrent: serviceCurrent,
		state:          state,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setOrderID(orderID),
		l.setArticleRef(articleRef),
		l.setQuantities(qty),
		serviceCurrent.Validate(),
		state.Validate(),
	); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l *Line) ID() kernel.UUID {
	return l.id
}

func (l *Line) OrderID() kernel.UUID {
	return l.orderID
}

func (l *Line) Seq() int {
	return l.seq
}

func (l *Line) Code() string {
	return l.code
}

func (l *Line) ArticleRef() string {
	return l.articleRef
}

func (l *Line) Color() string {
	return l.color
}

func (l *Line) Quantities() Quantities {
	return l.qty
}

func (l *Line) ServiceCurrent() kernel.ServiceStage {
	return l.serviceCurrent
}

func (l *Line) State() kernel.ProductionState {
	return l.state
}

func (l *Line) CreatedAt() time.Time {
	return l.createdAt
}

func (l *Line) UpdatedAt() time.Time {
	return l.updatedAt
}

// Resequence moves a not yet persisted line to another seq, recomputing its code.
func (l *Line) Resequence(orderCode string, seq int) error {
	return l.setSequence(orderCode, seq)
}

// Advance moves the line to the next service stage.
//
// Leaving cutting needs at least one produced piece and leaving finishing needs the
// full quantity to produce. A produced line cannot advance. Blocking anomalies are
// checked by the caller, which has access to them.
func (l *Line) Advance(now time.Time) error {
	switch l.serviceCurrent {
	case kernel.StageProduced:
		return errs.NewInvalidStateError("already produced")
	case kernel.StageCutting:
		if l.qty.Produced <= 0 {
			return errs.NewPreconditionFailedError("cutting not completed")
		}
	case kernel.StageFinishing:
		if l.qty.Produced < l.qty.ToProduce {
			return errs.NewPreconditionFailedError("produced quantity insufficient")
		}
	}

	next, ok := l.serviceCurrent.Next()
	if !ok {
		return errs.NewInvalidStateError(fmt.Sprintf("cannot advance from %s", l.serviceCurrent))
	}

	l.serviceCurrent = next
	if next == kernel.StageProduced {
		l.state = kernel.StateProduced
	}
	l.touch(now)
	return nil
}

// Edit is an administrative change of a line's descriptive fields and quantities.
// Nil fields are left as they are.
type Edit struct {
	ArticleRef *string
	Color      *string
	Ordered    *int
	ToProduce  *int
	Produced   *int
	Defect     *int
}

func (e Edit) IsEmpty() bool {
	return e == Edit{}
}

// ApplyEdit applies e atomically: on error the line is unchanged.
func (l *Line) ApplyEdit(e Edit, now time.Time) error {
	if e.IsEmpty() {
		return nil
	}

	next := *l
	qty := next.qty
	if e.Ordered != nil {
		qty.Ordered = *e.Ordered
	}
	if e.ToProduce != nil {
		qty.ToProduce = *e.ToProduce
	}
	if e.Produced != nil {
		qty.Produced = *e.Produced
	}
	if e.Defect != nil {
		qty.Defect = *e.Defect
	}

	var articleErr, colorErr error
	if e.ArticleRef != nil {
		articleErr = next.setArticleRef(*e.ArticleRef)
	}
	if e.Color != nil {
		colorErr = next.setColor(*e.Color)
	}

	if err := errors.Join(articleErr, colorErr, next.setQuantities(qty)); err != nil {
		return err
	}

	next.touch(now)
	*l = next
	return nil
}

// OverrideStage sets the stage without the Advance guards.
func (l *Line) OverrideStage(stage kernel.ServiceStage, now time.Time) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	l.serviceCurrent = stage
	l.touch(now)
	return nil
}

// OverrideState sets the state administratively; issue can be neither chosen nor left.
func (l *Line) OverrideState(state kernel.ProductionState, now time.Time) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if state == kernel.StateIssue {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%s is managed by anomalies", state))
	}
	if l.state == kernel.StateIssue {
		return errs.NewBlockedError("production order line", l.id.String())
	}
	l.state = state
	l.touch(now)
	return nil
}

// ForceIssue moves the line into issue. It reports whether the state changed.
func (l *Line) ForceIssue(now time.Time) bool {
	if l.state == kernel.StateIssue {
		return false
	}
	l.state = kernel.StateIssue
	l.touch(now)
	return true
}

// RestoreFromIssue takes the line out of issue, adopting the parent order's current
// state, or draft when the parent is itself in issue. It reports whether the state changed.
func (l *Line) RestoreFromIssue(parent kernel.ProductionState, now time.Time) bool {
	if l.state != kernel.StateIssue {
		return false
	}
	if parent == kernel.StateIssue || parent.Validate() != nil {
		parent = kernel.StateDraft
	}
	l.state = parent
	l.touch(now)
	return true
}

func (l *Line) touch(now time.Time) {
	if now.After(l.updatedAt) {
		l.updatedAt = now
	}
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.orderID = id
	return nil
}

func (l *Line) setSequence(orderCode string, seq int) error {
	if seq < 1 {
		return errs.NewValueIsInvalidErrorWithCause("seq", fmt.Errorf("%d is not greater than 0", seq))
	}
	if strings.TrimSpace(orderCode) == "" {
		return errs.NewValueIsRequiredError("order code")
	}
	l.seq = seq
	l.code = Code(orderCode, seq)
	return nil
}

func (l *Line) setArticleRef(articleRef string) error {
	articleRef = strings.TrimSpace(articleRef)
	if articleRef == "" {
		return errs.NewValueIsRequiredError("article_ref")
	}
	if len(articleRef) > maxArticleRefLength {
		return errs.NewValueIsOutOfRangeError("article_ref length", len(articleRef), 1, maxArticleRefLength)
	}
	l.articleRef = articleRef
	return nil
}

func (l *Line) setColor(color string) error {
	color = strings.TrimSpace(color)
	if len(color) > maxColorLength {
		return errs.NewValueIsOutOfRangeError("color length", len(color), 0, maxColorLength)
	}
	l.color = color
	return nil
}

func (l *Line) setQuantities(q Quantities) error {
	if err := q.Validate(); err != nil {
		return err
	}
	l.qty = q
	return nil
}

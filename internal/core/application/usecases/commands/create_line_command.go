package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrCreateLineCommandIsNotConstructed = errors.New(
	"CreateLineCommand must be created via NewCreateLineCommand constructor",
)

type CreateLineCommand struct {
	orderID    kernel.UUID
	articleRef string
	color      string
	qty        line.Quantities

	guard guard.ConstructorGuard
}

// NewCreateLineCommand validates the line payload. qtyToProduce defaults to qtyOrdered.
func NewCreateLineCommand(
	orderID kernel.UUID,
	articleRef, color string,
	qtyOrdered int,
	qtyToProduce *int,
) (CreateLineCommand, error) {
	cmd := CreateLineCommand{
		color: strings.TrimSpace(color),
		guard: guard.NewConstructorGuard(),
	}

	qty, qtyErr := line.NewQuantities(qtyOrdered, qtyToProduce)
	if err := errors.Join(
		orderID.Validate(),
		cmd.setArticleRef(articleRef),
		qtyErr,
	); err != nil {
		return CreateLineCommand{}, err
	}
	cmd.orderID = orderID
	cmd.qty = qty

	return cmd, nil
}

func (c CreateLineCommand) Validate() error {
	return c.guard.Validate(ErrCreateLineCommandIsNotConstructed)
}

func (c CreateLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateLineCommand) ArticleRef() string {
	return c.articleRef
}

func (c CreateLineCommand) Color() string {
	return c.color
}

func (c CreateLineCommand) Quantities() line.Quantities {
	return c.qty
}

func (c *CreateLineCommand) setArticleRef(articleRef string) error {
	articleRef = strings.TrimSpace(articleRef)
	if articleRef == "" {
		return errs.NewValueIsRequiredError("article_ref")
	}
	c.articleRef = articleRef
	return nil
}

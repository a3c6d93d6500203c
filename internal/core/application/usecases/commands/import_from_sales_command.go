package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
	"production/internal/pkg/guard"
)

var ErrImportFromSalesCommandIsNotConstructed = errors.New(
	"ImportFromSalesCommand must be created via NewImportFromSalesCommand constructor",
)

// ImportFromSalesCommand materializes the lines of an empty production order from the
// sales order named by its sale_ref.
type ImportFromSalesCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewImportFromSalesCommand(orderID kernel.UUID) (ImportFromSalesCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ImportFromSalesCommand{}, err
	}
	return ImportFromSalesCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ImportFromSalesCommand) Validate() error {
	return c.guard.Validate(ErrImportFromSalesCommandIsNotConstructed)
}

func (c ImportFromSalesCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ImportedLine describes one line created by an import.
type ImportedLine struct {
	LineCode   string
	ArticleRef string
	Color      string
	Sizes      []services.SizeQty
}

type ImportResult struct {
	CreatedLines int
	Details      []ImportedLine
}

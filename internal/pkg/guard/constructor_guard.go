// Package guard marks values that were built through their constructor so that
// zero-value structs can be told apart from valid ones.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands and value objects. Only NewConstructorGuard
// produces a guard that passes Validate.
//
//	type AdvanceLineCommand struct {
//	    lineID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c AdvanceLineCommand) Validate() error {
//	    return c.guard.Validate(ErrAdvanceLineCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil) for
// a zero-value guard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

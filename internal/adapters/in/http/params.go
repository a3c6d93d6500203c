package http

import (
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromString(id.String())
}

func pathString(c echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func queryString(c echo.Context, name string) (*string, error) {
	var value *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func optionalUUID(id *types.UUID, name string) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	v, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &v, nil
}

func optionalStage(s *string) (*kernel.ServiceStage, error) {
	if s == nil {
		return nil, nil
	}
	stage, err := kernel.ServiceStageFromInput(*s)
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

func optionalState(s *string) (*kernel.ProductionState, error) {
	if s == nil {
		return nil, nil
	}
	state, err := kernel.ProductionStateFromInput(*s)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

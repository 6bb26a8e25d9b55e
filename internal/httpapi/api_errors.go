package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/go-order-api-server/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-order-api-server/internal/domains/catalog/ports"
	orderapp "github.com/Apurer/go-order-api-server/internal/domains/orders/application"
	orderports "github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-order-api-server/internal/shared/errors"
)

// responder maps application errors to RFC 7807 responses.
var responder = apierrors.NewChainedResponder("", mapOrderError, mapCatalogError)

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, orderapp.ErrInsufficientStock):
		return apierrors.ErrInsufficientStock.WithDetail(err.Error()), true
	case errors.Is(err, orderapp.ErrInvalidState):
		return apierrors.ErrInvalidTransition.WithDetail(err.Error()), true
	case errors.Is(err, orderapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

// respondError preserves the handler call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	apierrors.Respond(c, problem)
}

func respondServiceError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeIdempotency  Code = "IDEMPOTENCY_KEY_REUSED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"

	// Order saga codes. Identifiers are stable and shown to clients as-is.
	CodeStockInsufficient       Code = "STOCK_INSUFFICIENT"
	CodeOrderNotFound           Code = "ORDER_NOT_FOUND"
	CodeOrderMemberNotMatched   Code = "ORDER_MEMBER_NOT_MATCHED"
	CodeOrderNotCompleted       Code = "ORDER_NOT_COMPLETED"
	CodeOrderAlreadyCanceled    Code = "ORDER_ALREADY_CANCELED"
	CodeOrderCanceled           Code = "ORDER_CANCELED"
	CodeAfterOrderComplete      Code = "AFTER_ORDER_COMPLETE"
	CodeDeliveryNotFound        Code = "DELIVERY_NOT_FOUND"
	CodeDeliveryNotFoundByLine  Code = "DELIVERY_NOT_FOUND_BY_ORDER_PRODUCT"
	CodeDeliveryCanceled        Code = "DELIVERY_CANCELED"
	CodeAfterDeliveryComplete   Code = "AFTER_DELIVERY_COMPLETE"
	CodeAlreadyWrote            Code = "ALREADY_WROTE"
	CodePaymentNotFound         Code = "PAYMENT_NOT_FOUND"
	CodePaymentAlreadyApproved  Code = "PAYMENT_ALREADY_APPROVED"
	CodeGateway                 Code = "GATEWAY_ERROR"
)

type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		Retryable:      false,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeUnauthorized: {
		HTTPStatus:     http.StatusUnauthorized,
		Retryable:      false,
		PublicMessage:  "authentication required",
		DetailsAllowed: false,
	},
	CodeForbidden: {
		HTTPStatus:     http.StatusForbidden,
		Retryable:      false,
		PublicMessage:  "access denied",
		DetailsAllowed: false,
	},
	CodeNotFound: {
		HTTPStatus:     http.StatusNotFound,
		Retryable:      false,
		PublicMessage:  "resource not found",
		DetailsAllowed: false,
	},
	CodeConflict: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "conflict detected",
		DetailsAllowed: false,
	},
	CodeIdempotency: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "idempotency key reused",
		DetailsAllowed: true,
	},
	CodeInternal: {
		HTTPStatus:     http.StatusInternalServerError,
		Retryable:      true,
		PublicMessage:  "internal server error",
		DetailsAllowed: false,
	},
	CodeDependency: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "dependency unavailable",
		DetailsAllowed: true,
	},
	CodeStockInsufficient: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "requested quantity exceeds available stock",
		DetailsAllowed: true,
	},
	CodeOrderNotFound: {
		HTTPStatus:     http.StatusNotFound,
		Retryable:      false,
		PublicMessage:  "order not found",
		DetailsAllowed: false,
	},
	CodeOrderMemberNotMatched: {
		HTTPStatus:     http.StatusForbidden,
		Retryable:      false,
		PublicMessage:  "order does not belong to the requester",
		DetailsAllowed: false,
	},
	CodeOrderNotCompleted: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		Retryable:      false,
		PublicMessage:  "order is not completed yet",
		DetailsAllowed: false,
	},
	CodeOrderAlreadyCanceled: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "order already canceled",
		DetailsAllowed: false,
	},
	CodeOrderCanceled: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		Retryable:      false,
		PublicMessage:  "order was canceled",
		DetailsAllowed: false,
	},
	CodeAfterOrderComplete: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		Retryable:      false,
		PublicMessage:  "allowed only after the order completes",
		DetailsAllowed: false,
	},
	CodeDeliveryNotFound: {
		HTTPStatus:     http.StatusNotFound,
		Retryable:      false,
		PublicMessage:  "delivery not found",
		DetailsAllowed: false,
	},
	CodeDeliveryNotFoundByLine: {
		HTTPStatus:     http.StatusNotFound,
		Retryable:      false,
		PublicMessage:  "delivery not found for order line",
		DetailsAllowed: true,
	},
	CodeDeliveryCanceled: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		Retryable:      false,
		PublicMessage:  "delivery was canceled",
		DetailsAllowed: false,
	},
	CodeAfterDeliveryComplete: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		Retryable:      false,
		PublicMessage:  "allowed only after the delivery completes",
		DetailsAllowed: false,
	},
	CodeAlreadyWrote: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "review already written",
		DetailsAllowed: false,
	},
	CodePaymentNotFound: {
		HTTPStatus:     http.StatusNotFound,
		Retryable:      false,
		PublicMessage:  "payment not found",
		DetailsAllowed: false,
	},
	CodePaymentAlreadyApproved: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "payment already approved",
		DetailsAllowed: false,
	},
	CodeGateway: {
		HTTPStatus:     http.StatusBadGateway,
		Retryable:      true,
		PublicMessage:  "payment gateway call failed",
		DetailsAllowed: true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}

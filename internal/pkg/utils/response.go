package utils

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/nldi-service/internal/pkg/errors"
)

// SendJSON writes v as application/json, optionally pretty printed. Used for
// every success response so the wire encoding is decided in one place.
func SendJSON(c *fiber.Ctx, v interface{}, pretty bool) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	var (
		body []byte
		err  error
	)
	if pretty {
		body, err = json.MarshalIndent(v, "", "  ")
	} else {
		body, err = json.Marshal(v)
	}
	if err != nil {
		return SendError(c, errors.ErrInternal)
	}
	return c.Send(body)
}

// ErrorKindKey is the ctx locals slot where SendError records the AppError
// code, so the request log line can carry the kind.
const ErrorKindKey = "error_kind"

// SendError maps an error onto its HTTP status and a {code, message} body.
// Anything that is not an AppError is masked as Internal; no stack traces on
// the wire.
func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		c.Locals(ErrorKindKey, appErr.Code)
		return c.Status(appErr.StatusCode).JSON(appErr)
	}
	c.Locals(ErrorKindKey, errors.ErrInternal.Code)
	return c.Status(errors.ErrInternal.StatusCode).JSON(errors.ErrInternal)
}

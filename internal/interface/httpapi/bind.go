package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"

	"github.com/labstack/echo/v4"

	"stock-tracker-api/internal/domain"
)

const msgInvalidBody = "Invalid request body"

// bindBody binds the request into dst. A JSON value of the wrong type is reported
// against its field; any other decode failure has no field to point at.
func bindBody(c echo.Context, dst interface{}) error {
	err := c.Bind(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.Validation(msgInvalidBody, domain.FieldError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be %s", typeErr.Field, jsonTypeName(typeErr.Type)),
		})
	}
	return domain.Validation(msgInvalidBody)
}

func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "an object"
	default:
		return "a valid value"
	}
}

// symbolParam returns the decoded :symbol segment. echo matches on URL.RawPath when the
// request carries one, and then params are still escaped; otherwise they come from the
// already decoded URL.Path and must not be unescaped again.
func symbolParam(c echo.Context) string {
	raw := c.Param("symbol")
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if symbol, err := url.PathUnescape(raw); err == nil {
		return symbol
	}
	return raw
}

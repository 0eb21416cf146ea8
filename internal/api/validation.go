package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// nonFieldErrors is the key used for messages not tied to a single input field.
const nonFieldErrors = "non_field_errors"

const msgSymbolNotString = "symbols must be a string value."

func init() {
	// Report json names ("first_name") instead of Go field names ("FirstName").
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	}
}

// fieldErrors groups messages by field.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

// bindingErrors converts a ShouldBindJSON error into field-level messages.
func bindingErrors(err error) fieldErrors {
	out := fieldErrors{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			// null or blank list entries fail the per-element rule as "symbols[i]"
			if strings.HasPrefix(fe.Field(), "symbols[") {
				if len(out[nonFieldErrors]) == 0 {
					out.add(nonFieldErrors, msgSymbolNotString)
				}
				continue
			}
			out.add(fe.Field(), validationMessage(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := strings.SplitN(typeErr.Field, ".", 2)[0]
		switch {
		case field == "symbols" && typeErr.Type != nil && typeErr.Type.Kind() == reflect.String:
			// an element of the list is not a string
			out.add(nonFieldErrors, msgSymbolNotString)
		case typeErr.Type != nil && typeErr.Type.Kind() == reflect.Slice:
			out.add(field, fmt.Sprintf("Expected a list of items but got type %q.", typeErr.Value))
		default:
			out.add(field, "Not a valid string.")
		}
		return out
	}

	if errors.Is(err, io.EOF) {
		out.add(nonFieldErrors, "request body is required.")
		return out
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		out.add(nonFieldErrors, "malformed JSON body.")
		return out
	}

	out.add(nonFieldErrors, err.Error())
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())
	}
}

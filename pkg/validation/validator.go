package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags shared by the request DTOs.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v)
	}
}

// Configure applies tag naming and aliases to v.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("pwd", "min=6")
	v.RegisterAlias("nonzero", "required")
}

// Bind decodes the JSON body into obj and validates it. Every failing field is reported.
func Bind(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperror.Validation(ToFieldErrors(err))
	}
	return nil
}

// ToFieldErrors converts binding/validation errors into field -> messages.
func ToFieldErrors(err error) map[string][]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "body"
		}
		return map[string][]string{field: {field + " has an invalid type"}}
	}
	if errors.As(err, &se) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return map[string][]string{"body": {"invalid json"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			out[field] = append(out[field], field+" "+formatFieldError(fe))
		}
		for k := range out {
			sort.Strings(out[k])
		}
		return out
	}

	return map[string][]string{"body": {"invalid payload"}}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required", "nonzero":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "pwd":
		return "must be at least 6 characters long"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "lte":
		return "must be less than or equal to " + param
	case "lt":
		return "must be less than " + param
	default:
		if param != "" {
			return fmt.Sprintf("failed validation '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("failed validation '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

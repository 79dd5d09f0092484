package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail represents the structure of a single validation error.
type ValidationErrorDetail struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Expected string      `json:"expected"`
	Received interface{} `json:"received,omitempty"`
}

var registerTagNameOnce sync.Once

// useJSONFieldNames makes validator report the json tag instead of the Go
// field name, so messages name the field the client actually sent.
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// BindAndValidate binds the request body to the given object and validates it.
// If validation fails, it sends a 400 {error, details} response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	useJSONFieldNames()
	if err := c.ShouldBindJSON(obj); err != nil {
		details := describeBindError(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error:   details[0].Message,
			Details: details,
		})
		return false
	}
	return true
}

// ValidateStruct runs the binding validator on a value that was not bound
// from a JSON body (multipart forms, query strings).
func ValidateStruct(c *gin.Context, obj interface{}) bool {
	useJSONFieldNames()
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		details := describeBindError(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error:   details[0].Message,
			Details: details,
		})
		return false
	}
	return true
}

func describeBindError(err error) []ValidationErrorDetail {
	var validationErrors []ValidationErrorDetail

	var errs validator.ValidationErrors
	var jsonErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &errs):
		for _, e := range errs {
			detail := ValidationErrorDetail{
				Field:    e.Field(),
				Message:  fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag()),
				Expected: e.Param(),
			}
			if detail.Expected == "" {
				detail.Expected = e.Tag()
			}

			switch e.Tag() {
			case "required":
				detail.Message = fmt.Sprintf("Field '%s' is required", e.Field())
				detail.Expected = "not empty"
			case "min":
				detail.Message = fmt.Sprintf("Field '%s' must be at least %s characters long", e.Field(), e.Param())
				detail.Expected = fmt.Sprintf("min length %s", e.Param())
				detail.Received = e.Value()
			case "max":
				detail.Message = fmt.Sprintf("Field '%s' must be at most %s characters long", e.Field(), e.Param())
				detail.Expected = fmt.Sprintf("max length %s", e.Param())
			}

			validationErrors = append(validationErrors, detail)
		}
	case errors.As(err, &jsonErr):
		validationErrors = append(validationErrors, ValidationErrorDetail{
			Field:    jsonErr.Field,
			Message:  fmt.Sprintf("Field '%s' has invalid type", jsonErr.Field),
			Expected: jsonErr.Type.String(),
			Received: jsonErr.Value,
		})
	}

	if len(validationErrors) == 0 {
		validationErrors = append(validationErrors, ValidationErrorDetail{
			Field:    "body",
			Message:  "Malformed JSON or invalid request body",
			Expected: "valid JSON",
		})
	}
	return validationErrors
}

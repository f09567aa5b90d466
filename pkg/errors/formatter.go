package errors

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "contains":
		return fmt.Sprintf("Must contain %q", param)
	case "max":
		return fmt.Sprintf("Must not exceed %s characters", param)
	default:
		return "Invalid value"
	}
}

func getJSONFieldName(structType reflect.Type, fieldName string) string {
	if structType == nil {
		return fieldName
	}

	field, found := structType.FieldByName(fieldName)
	if !found {
		return fieldName
	}

	jsonTag := field.Tag.Get("json")
	if jsonTag == "" {
		return fieldName
	}

	return strings.Split(jsonTag, ",")[0]
}

// FormatValidationErrors flattens binding errors into field/message pairs keyed by
// the JSON field name of model. Unknown error kinds produce an empty list.
func FormatValidationErrors(err error, model interface{}) []ValidationErrorResponse {
	var errorsList []ValidationErrorResponse

	if err == nil {
		return errorsList
	}

	var typeErr *json.UnmarshalTypeError
	if As(err, &typeErr) {
		return []ValidationErrorResponse{
			{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("Invalid type for field %s. Expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value),
			},
		}
	}

	var validationErrors validator.ValidationErrors
	if !As(err, &validationErrors) {
		return errorsList
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
	}

	errorsList = make([]ValidationErrorResponse, len(validationErrors))
	for i, fieldError := range validationErrors {
		errorsList[i] = ValidationErrorResponse{
			Field:   getJSONFieldName(structType, fieldError.Field()),
			Message: msgForTag(fieldError.Tag(), fieldError.Param()),
		}
	}

	return errorsList
}

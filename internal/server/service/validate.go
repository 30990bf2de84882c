package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
)

// validate — один экземпляр на процесс, validator кэширует разбор структур.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct прогоняет правила из тегов и превращает первую ошибку
// в ErrInvalidInput с понятным сообщением.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return serr.Invalid(err.Error())
	}

	// если не хватает нескольких обязательных полей — перечисляем их разом
	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fieldName(fe))
		}
	}
	if len(missing) > 0 {
		return serr.Invalid(strings.Join(missing, ", ") + " required")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return serr.Invalid(fieldName(fe) + " must be a valid email address")
	case "max":
		return serr.Invalid(fmt.Sprintf("%s must be at most %s characters", fieldName(fe), fe.Param()))
	default:
		return serr.Invalid(fieldName(fe) + " is invalid")
	}
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}

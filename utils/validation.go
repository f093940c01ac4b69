package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)

// RegisterValidators adds the isodate, clock and phone tags to gin's
// binding validator. Call once before serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"isodate": validateISODate,
		"clock":   validateClock,
		"phone":   validatePhone,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validator: %w", tag, err)
		}
	}
	return nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := ParseClock(fl.Field().String())
	return err == nil
}

// empty phones pass; pair with required when mandatory
func validatePhone(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s == "" || phoneRegex.MatchString(s)
}

// ValidationMessage renders binding errors as one readable line.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		var m string
		switch fe.Tag() {
		case "required":
			m = "is required"
		case "isodate":
			m = "must be a date in YYYY-MM-DD form"
		case "clock":
			m = "must be a time in HH:MM form"
		case "phone":
			m = "must be a phone number"
		case "min", "gte":
			m = "must be at least " + fe.Param()
		case "max", "lte":
			m = "must be at most " + fe.Param()
		case "oneof":
			m = "must be one of " + fe.Param()
		default:
			m = "failed " + fe.Tag()
		}
		msgs = append(msgs, fe.Field()+" "+m)
	}
	return strings.Join(msgs, "; ")
}

// Package validators registers the request rules used by the binding tags
// and turns validation failures into field → message maps.
package validators

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var cardNumberPattern = regexp.MustCompile(`^[0-9]{16}$`)

var registerOnce sync.Once

// Register installs the custom rules on gin's validator engine. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("notblank", notBlank)
		_ = v.RegisterValidation("cardnumber", cardNumber)
	})
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func cardNumber(fl validator.FieldLevel) bool {
	return cardNumberPattern.MatchString(fl.Field().String())
}

// Messages maps each failing field to a readable message. It returns nil when
// err is not a validation failure.
func Messages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fieldPath(fe)
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = message(key, fe)
	}
	return out
}

// fieldPath drops the root struct name, so nested failures read as
// "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "cardnumber":
		return "Card number must be exactly 16 digits"
	case "uuid":
		return field + " must be a valid UUID"
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "min":
		if fe.Kind() == reflect.Slice {
			return field + " must contain at least " + fe.Param() + " element(s)"
		}
		return field + " must be at least " + fe.Param()
	case "dive":
		return field + " is invalid"
	default:
		return field + " is invalid (" + fe.Tag() + ")"
	}
}

package validator

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	return Fields(validate.Struct(v))
}

// Fields flattens validator errors (including those returned by gin
// binding) into a snake_case field -> tag map. Other errors yield nil.
func Fields(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[snake(fe.Field())] = fe.Tag()
	}
	return out
}

func snake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

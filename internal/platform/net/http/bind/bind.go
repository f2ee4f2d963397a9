// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "artisantrend/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps request bodies
const MaxBody = 1 << 20

var (
	once  sync.Once
	valid *validator.Validate
	trans ut.Translator
)

// Validator returns the shared validator with english messages keyed by json names
func Validator() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")
		valid = validator.New(validator.WithRequiredStructEnabled())
		valid.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = entrans.RegisterDefaultTranslations(valid, trans)
		short(valid, trans, "min", "{0} must be at least {1}")
		short(valid, trans, "max", "{0} must be at most {1}")
	})
	return valid, trans
}

func short(v *validator.Validate, t ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, t,
		func(u ut.Translator) error { return u.Add(tag, text, true) },
		func(u ut.Translator, fe validator.FieldError) string {
			msg, _ := u.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Struct validates v and maps the first failure onto a validation error with its field
func Struct(v any) error {
	val, tr := Validator()
	err := val.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return perr.WithField(perr.Validationf("%s", ve[0].Translate(tr)), ve[0].Field())
	}
	return perr.Validationf("%v", err)
}

// ParseJSON decodes the body into T, rejecting unknown fields and trailing data, then validates.
// An empty body yields the zero T (still validated), so all-optional requests may omit it.
func ParseJSON[T any](r *http.Request) (T, error) {
	var dst T
	if r.Body == nil {
		return dst, Struct(dst)
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, Struct(dst)
		}
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return dst, perr.JSONErrf("unexpected trailing data")
	}
	return dst, Struct(dst)
}

package app

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validateOnce sync.Once
	validate     *govalidator.Validate
	trans        ut.Translator
)

// Validator returns the shared request validator. Field names in messages
// use the json tag.
func Validator() *govalidator.Validate {
	validateOnce.Do(func() {
		validate = govalidator.New(govalidator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, trans)
	})
	return validate
}

// Validate checks req against its validate tags. Failures come back as a
// VALIDATION_ERROR carrying one translated message per field.
func Validate(req any) error {
	err := Validator().Struct(req)
	if err == nil {
		return nil
	}
	fields := TranslateErrors(err)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	details := make([]string, 0, len(keys))
	for _, k := range keys {
		details = append(details, fields[k])
	}
	return &EngineError{Code: ErrValidation, Message: details[0], Details: details, Fields: fields}
}

// TranslateErrors maps validation failures to field -> message. Any other
// error is reported under "detail".
func TranslateErrors(err error) map[string]string {
	Validator()
	fields := make(map[string]string)
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fieldPath(fe)] = fe.Translate(trans)
		}
		return fields
	}
	fields["detail"] = err.Error()
	return fields
}

// fieldPath drops the top-level struct name from the namespace,
// e.g. AddCourseRequest.slot.year becomes slot.year.
func fieldPath(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

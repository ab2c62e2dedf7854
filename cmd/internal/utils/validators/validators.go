package validators

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptbrtranslations "github.com/go-playground/validator/v10/translations/pt_BR"
	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/domain/entity"
)

const IsoDateLayout = "2006-01-02"

var hasSpaces = regexp.MustCompile(`\s+`)

// Register installs the custom tags, json field naming and the pt_BR
// translations on validate. The returned translator renders FieldErrors.
func Register(validate *validator.Validate) (ut.Translator, error) {
	validate.RegisterTagNameFunc(jsonFieldName)

	_ = validate.RegisterValidation("nodupes", NoDupes)
	_ = validate.RegisterValidation("nospaces", NoWhiteSpaces)
	_ = validate.RegisterValidation("isodate", IsoDate)
	_ = validate.RegisterValidation("coluna", KanbanColumn)
	_ = validate.RegisterValidation("resultado", CardResult)

	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := ptbrtranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	custom := map[string]string{
		"nodupes":   "{0} não pode conter valores repetidos",
		"nospaces":  "{0} não pode conter espaços",
		"isodate":   "{0} deve ser uma data no formato AAAA-MM-DD",
		"coluna":    "{0} deve ser uma coluna válida do quadro",
		"resultado": "{0} deve ser 'evadiu' ou 'retido'",
	}
	for tag, text := range custom {
		if err := registerTranslation(validate, trans, tag, text); err != nil {
			return nil, err
		}
	}
	return trans, nil
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, text string) error {
	return validate.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// NoWhiteSpaces returns false if the string contains any whitespace (rejecting the user input).
func NoWhiteSpaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return !hasSpaces.MatchString(field.String())
}

func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s", slice.Kind().String())
		return false
	}

	length := slice.Len()
	seen := make(map[any]bool, length)
	for i := 0; i < length; i++ {
		val := slice.Index(i).Interface()
		if _, exists := seen[val]; exists {
			return false
		}
		seen[val] = true
	}
	return true
}

// IsoDate accepts YYYY-MM-DD strings. Empty strings pass, pair it with
// "required" when the date is mandatory.
func IsoDate(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if val == "" {
		return true
	}
	_, err := time.Parse(IsoDateLayout, val)
	return err == nil
}

func KanbanColumn(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return entity.Column(val).IsValid()
}

func CardResult(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return entity.Resultado(val).IsValid()
}

// Package validation normaliza los campos de texto y valida las entradas con las etiquetas
// `validate` de go-playground/validator. Los fallos se devuelven por campo (nombre json).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Longitudes máximas de los campos de texto.
const (
	NameMaxLength        = 64
	DescriptionMaxLength = 128
)

// ErrValidatorInit falla al registrar las validaciones propias.
var ErrValidatorInit = errors.New("inicialización del validador")

var (
	leadingNumOrSpecial = regexp.MustCompile(`^[0-9.,/]`)
	rfcPattern          = regexp.MustCompile(`^[A-ZÑ&]{3,4}[0-9]{6}[A-Z0-9]{3}$`)
	nssPattern          = regexp.MustCompile(`^[0-9]{11}$`)
)

// Errors errores por campo. Envuelve domain.ErrInvalidInput.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error { return domain.ErrInvalidInput }

// Add registra el primer error de un campo.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Err devuelve nil si no hay errores.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Text recorta espacios y normaliza a NFC para que los nombres únicos comparen igual.
func Text(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

// TextPtr normaliza un campo opcional de una actualización. nil sigue siendo nil.
func TextPtr(value *string) *string {
	if value == nil {
		return nil
	}
	v := Text(*value)
	return &v
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

func initValidator() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())
	vld.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	custom := map[string]validator.Func{
		// Nombres y descripciones no empiezan con dígito ni con . , /
		"catalog_text": func(fl validator.FieldLevel) bool {
			return !leadingNumOrSpecial.MatchString(fl.Field().String())
		},
		"rfc": func(fl validator.FieldLevel) bool {
			return rfcPattern.MatchString(fl.Field().String())
		},
		"nss": func(fl validator.FieldLevel) bool {
			return nssPattern.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range custom {
		if err := vld.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("%w: registrar '%s': %w", ErrValidatorInit, tag, err)
		}
	}
	return vld, nil
}

// Validator devuelve la instancia única del validador.
func Validator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = initValidator()
	})
	return validate, errValidate
}

// Check valida payload con sus etiquetas y devuelve los fallos por campo (vacío si no hay).
// El error solo es distinto de nil si el validador no pudo ejecutarse.
func Check(payload any) (Errors, error) {
	vld, err := Validator()
	if err != nil {
		return nil, err
	}
	errs := Errors{}
	if err := vld.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("validar %T: %w", payload, err)
		}
		for _, fe := range fieldErrs {
			errs.Add(fieldPath(fe), message(fe))
		}
	}
	return errs, nil
}

// fieldPath quita el nombre del struct raíz: "CreatePersonRequest.student.rfc" -> "student.rfc".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

var messages = map[string]func(param string) string{
	"required":    func(string) string { return "el campo es requerido" },
	"required_if": func(string) string { return "el campo es requerido" },
	"min": func(p string) string {
		if p == "1" {
			return "el campo es requerido"
		}
		return fmt.Sprintf("debe tener al menos %s caracteres", p)
	},
	"max":          func(p string) string { return fmt.Sprintf("el campo no puede tener más de %s caracteres", p) },
	"gte":          func(p string) string { return fmt.Sprintf("el valor no puede ser menor que %s", p) },
	"lte":          func(p string) string { return fmt.Sprintf("el valor no puede ser mayor que %s", p) },
	"oneof":        func(p string) string { return "debe ser uno de: " + strings.ReplaceAll(p, " ", ", ") },
	"email":        func(string) string { return "correo electrónico inválido" },
	"catalog_text": func(string) string { return "el campo no puede iniciar con un número o un carácter especial" },
	"rfc":          func(string) string { return "RFC inválido" },
	"nss":          func(string) string { return "NSS inválido: 11 dígitos" },
}

func message(fe validator.FieldError) string {
	if format, ok := messages[fe.Tag()]; ok {
		return format(fe.Param())
	}
	return fmt.Sprintf("no cumple la regla '%s'", fe.Tag())
}

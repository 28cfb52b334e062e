package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/validation"
)

type catalogItem struct {
	Name        string `json:"name" validate:"required,max=64,catalog_text"`
	Description string `json:"description" validate:"max=128,catalog_text"`
	Code        int    `json:"code" validate:"gte=10000,lte=30000"`
	Unit        string `json:"unit" validate:"omitempty,oneof=PC KG"`
}

type student struct {
	ControlNumber string `json:"control_number" validate:"required,max=20"`
}

type provider struct {
	RFC string `json:"rfc" validate:"required,rfc"`
	NSS string `json:"nss" validate:"omitempty,nss"`
}

type person struct {
	Kind     string    `json:"kind" validate:"required,oneof=STUDENT PROVIDER"`
	Email    string    `json:"email" validate:"omitempty,email"`
	Student  *student  `json:"student" validate:"required_if=Kind STUDENT"`
	Provider *provider `json:"provider" validate:"required_if=Kind PROVIDER"`
}

type patch struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=64,catalog_text"`
}

func validItem() catalogItem {
	return catalogItem{Name: "Multímetro", Code: 21101}
}

func check(t *testing.T, payload any) validation.Errors {
	t.Helper()
	errs, err := validation.Check(payload)
	require.NoError(t, err)
	return errs
}

func TestText_RecortaYNormaliza(t *testing.T) {
	// "e" + acento combinante debe quedar como "é" precompuesta.
	assert.Equal(t, "Caf\u00e9 Central", validation.Text("  Cafe\u0301 Central "))

	assert.Nil(t, validation.TextPtr(nil))
	v := "  Anexo "
	assert.Equal(t, "Anexo", *validation.TextPtr(&v))
}

func TestCheck_SinErrores(t *testing.T) {
	errs := check(t, validItem())

	assert.Empty(t, errs)
	assert.NoError(t, errs.Err())
}

func TestCheck_ReglasDeNombre(t *testing.T) {
	cases := map[string]string{
		"":                      "el campo es requerido",
		"1 Almacén":             "el campo no puede iniciar con un número o un carácter especial",
		"/bodega":               "el campo no puede iniciar con un número o un carácter especial",
		",coma":                 "el campo no puede iniciar con un número o un carácter especial",
		strings.Repeat("a", 65): "el campo no puede tener más de 64 caracteres",
	}
	for in, want := range cases {
		item := validItem()
		item.Name = in
		assert.Equal(t, want, check(t, item)["name"], "entrada %q", in)
	}
}

func TestCheck_DescripcionOpcional(t *testing.T) {
	item := validItem()
	assert.NotContains(t, check(t, item), "description")

	item.Description = strings.Repeat("x", 129)
	assert.Contains(t, check(t, item)["description"], "128")
}

func TestCheck_RangoCodigoCategoria(t *testing.T) {
	item := validItem()
	item.Code = 9999
	assert.Equal(t, "el valor no puede ser menor que 10000", check(t, item)["code"])

	item.Code = 30001
	assert.Equal(t, "el valor no puede ser mayor que 30000", check(t, item)["code"])

	item.Code = 10000
	assert.Empty(t, check(t, item))
}

func TestCheck_ListaCerrada(t *testing.T) {
	item := validItem()
	item.Unit = "TON"

	assert.Equal(t, "debe ser uno de: PC, KG", check(t, item)["unit"])
}

func TestCheck_SubtipoDePersona(t *testing.T) {
	errs := check(t, person{Kind: "STUDENT"})
	assert.Equal(t, "el campo es requerido", errs["student"])
	assert.NotContains(t, errs, "provider")

	errs = check(t, person{Kind: "STUDENT", Student: &student{}})
	assert.Equal(t, "el campo es requerido", errs["student.control_number"], "la ruta incluye el objeto anidado")

	errs = check(t, person{Kind: "PROVIDER", Provider: &provider{RFC: "LOPA8001011", NSS: "123"}})
	assert.Equal(t, "RFC inválido", errs["provider.rfc"])
	assert.Equal(t, "NSS inválido: 11 dígitos", errs["provider.nss"])

	errs = check(t, person{Kind: "PROVIDER", Provider: &provider{RFC: "LOPA800101AB1", NSS: "12345678901"}})
	assert.Empty(t, errs)
}

func TestCheck_Email(t *testing.T) {
	errs := check(t, person{Kind: "VISITANTE", Email: "sin-arroba"})

	assert.Equal(t, "correo electrónico inválido", errs["email"])
	assert.Equal(t, "debe ser uno de: STUDENT, PROVIDER", errs["kind"])
}

func TestCheck_ActualizacionParcial(t *testing.T) {
	assert.Empty(t, check(t, patch{}), "un campo ausente no se valida")

	empty := ""
	assert.Equal(t, "el campo es requerido", check(t, patch{Name: &empty})["name"])

	bad := "9 de mayo"
	assert.Contains(t, check(t, patch{Name: &bad}), "name")
}

func TestErrors_EnvuelveInvalidInput(t *testing.T) {
	errs := validation.Errors{}
	errs.Add("name", "malo")
	errs.Add("name", "ignorado")

	err := errs.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "name: malo", err.Error())
}

func TestValidator_Unico(t *testing.T) {
	a, err := validation.Validator()
	require.NoError(t, err)
	b, err := validation.Validator()
	require.NoError(t, err)

	assert.Same(t, a, b)
}

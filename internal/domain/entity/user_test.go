package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeUser() *User {
	return &User{
		DeliveryPhone:      "555-1234",
		FiscalAddress:      "Calle Mayor 1",
		FiscalCity:         "Madrid",
		FiscalProvince:     "Madrid",
		FiscalPostalCode:   "28001",
		DeliveryType:       "envio",
		DeliveryAddress:    "Av. Entrega 4",
		DeliveryCity:       "Barcelona",
		DeliveryProvince:   "Barcelona",
		DeliveryPostalCode: "08001",
	}
}

func TestCheckProfileCompleted_AllFieldsFilled(t *testing.T) {
	u := completeUser()

	assert.True(t, u.CheckProfileCompleted())

	u.RefreshProfileCompleted()
	assert.True(t, u.ProfileCompleted)
	assert.Empty(t, u.MissingProfileFields(LanguageES))
}

func TestCheckProfileCompleted_EmptyUser(t *testing.T) {
	u := &User{}

	assert.False(t, u.CheckProfileCompleted())

	missing := u.MissingProfileFields(LanguageES)
	require.Len(t, missing, 10)
	assert.Contains(t, missing, "Teléfono de reparto")
	assert.Contains(t, missing, "Dirección local")
	assert.Contains(t, missing, "Ciudad")
	assert.Contains(t, missing, "Provincia")
	assert.Contains(t, missing, "Código postal")
	assert.Contains(t, missing, "Tipo de entrega")
	assert.Contains(t, missing, "Dirección de entrega")
	assert.Contains(t, missing, "Ciudad de entrega")
	assert.Contains(t, missing, "Provincia de entrega")
	assert.Contains(t, missing, "Código postal de entrega")
}

func TestCheckProfileCompleted_WhitespaceDoesNotCount(t *testing.T) {
	u := completeUser()
	u.DeliveryPostalCode = "   "

	u.RefreshProfileCompleted()

	assert.False(t, u.ProfileCompleted)
	assert.Equal(t, []string{"Código postal de entrega"}, u.MissingProfileFields(LanguageES))
}

func TestMissingProfileFields_ChineseLabels(t *testing.T) {
	u := completeUser()
	u.DeliveryPhone = ""

	assert.Equal(t, []string{"配送电话"}, u.MissingProfileFields(LanguageZhHans))
}

func TestClearingAnySingleFieldBreaksCompleteness(t *testing.T) {
	clearers := []func(*User){
		func(u *User) { u.DeliveryPhone = "" },
		func(u *User) { u.FiscalAddress = "" },
		func(u *User) { u.FiscalCity = "" },
		func(u *User) { u.FiscalProvince = "" },
		func(u *User) { u.FiscalPostalCode = "" },
		func(u *User) { u.DeliveryType = "" },
		func(u *User) { u.DeliveryAddress = "" },
		func(u *User) { u.DeliveryCity = "" },
		func(u *User) { u.DeliveryProvince = "" },
		func(u *User) { u.DeliveryPostalCode = "" },
	}

	for i, clear := range clearers {
		u := completeUser()
		clear(u)
		u.RefreshProfileCompleted()

		assert.False(t, u.ProfileCompleted, "field %d should break completeness", i)
		assert.Len(t, u.MissingProfileFields(LanguageES), 1)
	}
}

func TestResolveLanguage_FallbackChain(t *testing.T) {
	assert.Equal(t, LanguageZhHans, ResolveLanguage(LanguageZhHans, LanguageES))
	assert.Equal(t, LanguageZhHans, ResolveLanguage("", LanguageZhHans))
	assert.Equal(t, LanguageES, ResolveLanguage("", ""))
	assert.Equal(t, LanguageES, ResolveLanguage("fr", "de"))
}

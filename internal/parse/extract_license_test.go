package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLicenseExtractorFullRecord(t *testing.T) {
	e := NewLicenseExtractor(testGaz(t), nil)

	rec := e.Extract(blockOf(
		"12 M1 GOMEZ CARLOS ALBERTO AV BELGRANO 1250 SALTA CP:4400 +54 9 387 5123456 30-jun-26"))

	require.NotNil(t, rec)
	assert.Equal(t, "12", rec.LicenseNumber)
	assert.Equal(t, "GOMEZ CARLOS ALBERTO", rec.Name)
	require.NotNil(t, rec.Category)
	assert.Equal(t, "M1", *rec.Category)
	assert.Equal(t, "Instalador de primera categoría", *rec.CategoryDescription)
	require.NotNil(t, rec.Address)
	assert.Equal(t, "AV BELGRANO 1250", *rec.Address)
	require.NotNil(t, rec.Locality)
	assert.Equal(t, "SALTA", *rec.Locality)
	require.NotNil(t, rec.Province)
	assert.Equal(t, "Salta", *rec.Province)
	require.NotNil(t, rec.PostalCode)
	assert.Equal(t, "4400", *rec.PostalCode)
	require.Len(t, rec.Phones, 1)
	assert.Equal(t, "+54 9 387 5123456", rec.Phones[0])
	require.NotNil(t, rec.LicenseExpiry)
	assert.Equal(t, "2026-06-30", rec.LicenseExpiry.Format("2006-01-02"))
	assert.Nil(t, rec.TaxID)
}

func TestLicenseExtractorProvinceFromLocality(t *testing.T) {
	e := NewLicenseExtractor(testGaz(t), nil)

	// "JUJUY" appears only inside the locality name, so the province has
	// to come from the locality lookup, not a standalone token match.
	rec := e.Extract(blockOf(
		"45 M2 DIAZ JUAN B° NORTE SAN SALVADOR DE JUJUY +54 388 4123456 15-ene-27"))

	require.NotNil(t, rec)
	assert.Equal(t, "45", rec.LicenseNumber)
	assert.Equal(t, "DIAZ JUAN", rec.Name)
	require.NotNil(t, rec.Locality)
	assert.Equal(t, "SAN SALVADOR DE JUJUY", *rec.Locality)
	require.NotNil(t, rec.Province)
	assert.Equal(t, "Jujuy", *rec.Province)
	require.NotNil(t, rec.Address)
	assert.Equal(t, "B NORTE", *rec.Address)
	require.Len(t, rec.Phones, 1)
	assert.Equal(t, "+54 9 388 4123456", rec.Phones[0])
}

func TestLicenseExtractorIgnoresBareNationalPhones(t *testing.T) {
	e := NewLicenseExtractor(testGaz(t), nil)

	rec := e.Extract(blockOf("33 M3 PEREZ ANA CALLE MITRE 40 SALTA 0387 4123456"))

	require.NotNil(t, rec)
	assert.Empty(t, rec.Phones)
	assert.Nil(t, rec.Phone)
	// The unclaimed digits stay out of the address too.
	require.NotNil(t, rec.Address)
	assert.Equal(t, "CALLE MITRE 40", *rec.Address)
}

func TestLicenseExtractorCategorySpellings(t *testing.T) {
	e := NewLicenseExtractor(testGaz(t), nil)

	for _, tt := range []struct {
		anchor string
		want   string
	}{
		{"7 M-2", "M2"},
		{"7 M 3", "M3"},
		{"1234 M1", "M1"},
	} {
		rec := e.Extract(blockOf(tt.anchor + " LOPEZ MARIO CALLE SUR 10 SALTA"))
		require.NotNil(t, rec, tt.anchor)
		require.NotNil(t, rec.Category, tt.anchor)
		assert.Equal(t, tt.want, *rec.Category, tt.anchor)
	}
}

func TestLicenseExtractorRejects(t *testing.T) {
	e := NewLicenseExtractor(testGaz(t), nil)

	t.Run("no leading anchor", func(t *testing.T) {
		assert.Nil(t, e.Extract(blockOf("GOMEZ CARLOS AV BELGRANO 1250 SALTA")))
	})

	t.Run("anchor but no name", func(t *testing.T) {
		assert.Nil(t, e.Extract(blockOf("12 M1 AV BELGRANO 1250 SALTA")))
	})
}

func TestLicenseExtractorEmail(t *testing.T) {
	e := NewLicenseExtractor(testGaz(t), nil)

	rec := e.Extract(blockOf("88 M1 SOSA PEDRO CALLE NORTE 5 SALTA psosa@example.com"))
	require.NotNil(t, rec)
	require.NotNil(t, rec.Email)
	assert.Equal(t, "psosa@example.com", *rec.Email)
}

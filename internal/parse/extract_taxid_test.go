package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gasdir-ar/gasdir/internal/gazetteer"
)

func testGaz(t *testing.T) *gazetteer.Gazetteer {
	t.Helper()
	gaz, err := gazetteer.Load("")
	require.NoError(t, err)
	return gaz
}

func blockOf(text string) Block {
	return Block{Lines: []Line{{Num: 1, Text: text}}}
}

func TestTaxIDExtractorFullRecord(t *testing.T) {
	e := NewTaxIDExtractor(testGaz(t), nil)

	rec := e.Extract(blockOf(
		"CORRIENTES JUAN PEREZ 20123456789 SAN MARTIN 123 CP:3400 03783 123456 4521 M2 31-dic-25"))

	require.NotNil(t, rec)
	assert.Equal(t, "JUAN PEREZ", rec.Name)
	require.NotNil(t, rec.Locality)
	assert.Equal(t, "CORRIENTES", *rec.Locality)
	require.NotNil(t, rec.Province)
	assert.Equal(t, "Corrientes", *rec.Province)
	require.NotNil(t, rec.TaxID)
	assert.Equal(t, "20123456789", *rec.TaxID)
	require.NotNil(t, rec.PostalCode)
	assert.Equal(t, "3400", *rec.PostalCode)
	require.NotNil(t, rec.Address)
	assert.Equal(t, "SAN MARTIN 123", *rec.Address)
	require.NotNil(t, rec.Category)
	assert.Equal(t, "M2", *rec.Category)
	assert.Equal(t, "Instalador de segunda categoría", *rec.CategoryDescription)
	require.NotNil(t, rec.ValidUntilRaw)
	assert.Equal(t, "31-dic-25", *rec.ValidUntilRaw)
	require.NotNil(t, rec.LicenseExpiry)
	assert.Equal(t, "2025-12-31", rec.LicenseExpiry.Format("2006-01-02"))

	// One normalized phone; the tax id and stray digits never leak in.
	require.Len(t, rec.Phones, 1)
	assert.Equal(t, "+54 9 3783 123456", rec.Phones[0])
	assert.NotEmpty(t, rec.LicenseNumber)
}

func TestTaxIDExtractorLicenseNumberIsStableHash(t *testing.T) {
	e := NewTaxIDExtractor(testGaz(t), nil)

	a := e.Extract(blockOf("CORRIENTES JUAN PEREZ 20123456789 SAN MARTIN 123"))
	b := e.Extract(blockOf("GOYA JUAN PEREZ 20123456789 BELGRANO 9"))
	c := e.Extract(blockOf("GOYA JUAN PEREZ 27987654321 BELGRANO 9"))

	require.NotNil(t, a)
	require.NotNil(t, b)
	require.NotNil(t, c)
	assert.Equal(t, a.LicenseNumber, b.LicenseNumber)
	assert.NotEqual(t, a.LicenseNumber, c.LicenseNumber)
}

func TestTaxIDExtractorNameBoundary(t *testing.T) {
	e := NewTaxIDExtractor(testGaz(t), nil)

	t.Run("two-character name rejected", func(t *testing.T) {
		assert.Nil(t, e.Extract(blockOf("CORRIENTES LU 20123456789 SAN MARTIN 123")))
	})

	t.Run("three-character name accepted", func(t *testing.T) {
		rec := e.Extract(blockOf("CORRIENTES LUZ 20123456789 SAN MARTIN 123"))
		require.NotNil(t, rec)
		assert.Equal(t, "LUZ", rec.Name)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		assert.Nil(t, e.Extract(blockOf("CORRIENTES 20123456789 SAN MARTIN 123")))
	})

	t.Run("name capped at four words", func(t *testing.T) {
		rec := e.Extract(blockOf(
			"CORRIENTES GOMEZ ORTIZ JUAN CARLOS MARIA 20123456789 SAN MARTIN 123"))
		require.NotNil(t, rec)
		assert.Equal(t, "GOMEZ ORTIZ JUAN CARLOS", rec.Name)
	})
}

func TestTaxIDExtractorPhonePair(t *testing.T) {
	e := NewTaxIDExtractor(testGaz(t), nil)

	t.Run("short second number inherits area code", func(t *testing.T) {
		rec := e.Extract(blockOf("GOYA MARIA LOPEZ 27987654321 BELGRANO 742 CP:3450 03777 421987/423111"))
		require.NotNil(t, rec)
		assert.Equal(t, []string{"+54 9 3777 421987", "+54 9 3777 423111"}, rec.Phones)
	})

	t.Run("15-prefixed second number inherits and drops the prefix", func(t *testing.T) {
		rec := e.Extract(blockOf("GOYA MARIA LOPEZ 27987654321 BELGRANO 742 CP:3450 03777 421987/15334455"))
		require.NotNil(t, rec)
		assert.Equal(t, []string{"+54 9 3777 421987", "+54 9 3777 334455"}, rec.Phones)
	})

	t.Run("self-contained second number keeps its own area code", func(t *testing.T) {
		rec := e.Extract(blockOf("GOYA MARIA LOPEZ 27987654321 BELGRANO 742 CP:3450 03777 421987/379433221"))
		require.NotNil(t, rec)
		assert.Equal(t, []string{"+54 9 3777 421987", "+54 9 379 433221"}, rec.Phones)
	})

	t.Run("duplicate across pair and single dropped", func(t *testing.T) {
		rec := e.Extract(blockOf("GOYA MARIA LOPEZ 27987654321 BELGRANO 742 03777 421987/423111 03777 421987"))
		require.NotNil(t, rec)
		assert.Len(t, rec.Phones, 2)
	})
}

func TestTaxIDExtractorAddressFallback(t *testing.T) {
	e := NewTaxIDExtractor(testGaz(t), nil)

	t.Run("street heuristic without postal marker", func(t *testing.T) {
		rec := e.Extract(blockOf("CORRIENTES JUAN PEREZ 20123456789 SAN MARTIN 123 03783 123456"))
		require.NotNil(t, rec)
		require.NotNil(t, rec.Address)
		assert.Equal(t, "SAN MARTIN 123", *rec.Address)
		assert.Nil(t, rec.PostalCode)
	})

	t.Run("no address is not an error", func(t *testing.T) {
		rec := e.Extract(blockOf("CORRIENTES JUAN PEREZ 20123456789 03783 123456"))
		require.NotNil(t, rec)
		assert.Nil(t, rec.Address)
	})
}

func TestTaxIDExtractorProvinceFromAreaCode(t *testing.T) {
	e := NewTaxIDExtractor(testGaz(t), nil)

	// Unknown locality: province inferred from the phone's area code.
	rec := e.Extract(blockOf("JUAN PEREZ 20123456789 SAN MARTIN 123 CP:3500 0362 412345"))
	require.NotNil(t, rec)
	assert.Nil(t, rec.Locality)
	require.NotNil(t, rec.Province)
	assert.Equal(t, "Chaco", *rec.Province)
}

func TestTaxIDExtractorEmail(t *testing.T) {
	e := NewTaxIDExtractor(testGaz(t), nil)

	rec := e.Extract(blockOf("CORRIENTES JUAN PEREZ 20123456789 SAN MARTIN 123 CP:3400 jperez@example.com"))
	require.NotNil(t, rec)
	require.NotNil(t, rec.Email)
	assert.Equal(t, "jperez@example.com", *rec.Email)
	// The email never bleeds into the address.
	require.NotNil(t, rec.Address)
	assert.Equal(t, "SAN MARTIN 123", *rec.Address)
}

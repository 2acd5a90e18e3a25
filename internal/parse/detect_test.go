package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gasdir-ar/gasdir/constants"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		hint      constants.Publisher
		format    constants.Format
		confident bool
	}{
		{
			name:      "cuit header means tax-id format",
			text:      "LOCALIDAD APELLIDO Y NOMBRE CUIT DOMICILIO",
			hint:      constants.Auto,
			format:    constants.FormatTaxID,
			confident: true,
		},
		{
			name:      "category plus cellphone header pair means license format",
			text:      "MAT CATEGORÍA APELLIDO Y NOMBRE DOMICILIO CELULAR",
			hint:      constants.Auto,
			format:    constants.FormatLicense,
			confident: true,
		},
		{
			name:      "no signature defaults to tax-id with low confidence",
			text:      "some unrelated listing text",
			hint:      constants.Auto,
			format:    constants.FormatTaxID,
			confident: false,
		},
		{
			name:      "explicit hint skips detection",
			text:      "LOCALIDAD APELLIDO Y NOMBRE CUIT DOMICILIO",
			hint:      constants.PublisherB,
			format:    constants.FormatLicense,
			confident: true,
		},
		{
			name:      "celular alone is not a license signature",
			text:      "CELULAR listing without the category column",
			hint:      constants.Auto,
			format:    constants.FormatTaxID,
			confident: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DetectFormat(tt.text, tt.hint)
			assert.Equal(t, tt.format, d.Format)
			assert.Equal(t, tt.confident, d.Confident)
		})
	}
}

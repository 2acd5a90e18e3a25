package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShortDate(t *testing.T) {
	t.Run("valid dates", func(t *testing.T) {
		tests := []struct {
			token string
			want  time.Time
		}{
			{"31-mar-26", time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)},
			{"31-dic-25", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)},
			{"1-ene-00", time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)},
			{"15-ago-99", time.Date(1999, time.August, 15, 0, 0, 0, 0, time.UTC)},
			{"5/set/03", time.Date(2003, time.September, 5, 0, 0, 0, 0, time.UTC)},
			{"30-sept-24", time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC)},
			{"10-DIC-25", time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)},
		}
		for _, tt := range tests {
			got := ParseShortDate(tt.token)
			require.NotNil(t, got, tt.token)
			assert.Equal(t, tt.want, *got, tt.token)
		}
	})

	t.Run("century pivot", func(t *testing.T) {
		d := ParseShortDate("1-ene-49")
		require.NotNil(t, d)
		assert.Equal(t, 2049, d.Year())

		d = ParseShortDate("1-ene-50")
		require.NotNil(t, d)
		assert.Equal(t, 1950, d.Year())
	})

	t.Run("invalid input returns nil", func(t *testing.T) {
		for _, token := range []string{
			"15-xyz-99", // unknown month
			"31-feb-22", // day overflows the month
			"0-ene-22",
			"32-ene-22",
			"31-dic-2025", // 4-digit year is not this format
			"dic-25",
			"",
			"not a date",
		} {
			assert.Nil(t, ParseShortDate(token), token)
		}
	})
}

package cpf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKnownCPFs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"digits only", "52998224725", true},
		{"formatted", "529.982.247-25", true},
		{"second valid", "11144477735", true},
		{"wrong first digit", "52998224715", false},
		{"wrong second digit", "52998224724", false},
		{"too short", "5299822472", false},
		{"too long", "529982247250", false},
		{"empty", "", false},
		{"letters", "abcdefghijk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.input))
		})
	}
}

func TestValidateRejectsRepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		s := strings.Repeat(string(d), Length)
		assert.False(t, Validate(s), "expected %s to be invalid", s)
	}
}

func TestCheckDigitsProducesValidCPFs(t *testing.T) {
	bases := []string{"123456789", "529982247", "111444777", "987654321", "000000001", "390533447"}

	for _, base := range bases {
		full, err := CheckDigits(base)
		require.NoError(t, err)
		assert.Len(t, full, Length)
		assert.True(t, strings.HasPrefix(full, base))
		assert.True(t, Validate(full), "generated %s should validate", full)
	}
}

func TestCheckDigitsRejectsBadBase(t *testing.T) {
	_, err := CheckDigits("12345")
	assert.ErrorIs(t, err, ErrInvalidBase)

	_, err = CheckDigits("123.456.789")
	assert.ErrorIs(t, err, ErrInvalidBase)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "529.982.247-25", Format("52998224725"))
	assert.Equal(t, "529.982.247-25", Format("529.982.247-25"))
	assert.Equal(t, "12345", Format("12-345"))
}

func TestFormatRoundTrip(t *testing.T) {
	for _, base := range []string{"123456789", "529982247", "700000000"} {
		full, err := CheckDigits(base)
		require.NoError(t, err)

		formatted := Format(full)
		assert.Equal(t, formatted, Format(Strip(formatted)))
		assert.Equal(t, full, Strip(formatted))
	}
}

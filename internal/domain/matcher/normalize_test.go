package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeReference_EquivalentForms(t *testing.T) {
	// All spellings of the same creditor reference collapse to "123"
	forms := []string{"RF000123", "rf 123", " 123", "123", "RF 00 123"}

	for _, form := range forms {
		assert.Equal(t, "123", normalizeReference(form), "form %q", form)
	}
}

func TestNormalizeReference_Empty(t *testing.T) {
	assert.Equal(t, "", normalizeReference(""))
	assert.Equal(t, "", normalizeReference("   "))
	assert.Equal(t, "", normalizeReference("RF000"))
	assert.Equal(t, "", normalizeReference("000"))
}

func TestNormalizeReference_PrefixOnlyStrippedOnce(t *testing.T) {
	// "RFRF1" keeps the second RF: only the leading prefix is stripped
	assert.Equal(t, "RF1", normalizeReference("rfrf1"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "vendor oy", normalizeName("  Vendor   Oy "))
	assert.Equal(t, "jane doe design", normalizeName("Jane\tDoe  Design"))
	assert.Equal(t, "", normalizeName("   "))
	assert.Equal(t, "", normalizeName(""))
}

package province

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DKI Jakarta", "dki-jakarta"},
		{"Bali", "bali"},
		{"DI Yogyakarta", "di-yogyakarta"},
		{"  Jawa   Barat ", "jawa-barat"},
		{"Kepulauan Bangka-Belitung", "kepulauan-bangka-belitung"},
		{"Papua (Barat)!", "papua-barat"},
		{"Sulawési Utara", "sulawesi-utara"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slug(tc.input))
		})
	}
}

func TestSlugIdempotent(t *testing.T) {
	inputs := []string{"DKI Jakarta", "  Nusa\tTenggara  Timur", "Ünïcødé Prövince", "a--b", "Maluku_Utara #1"}
	for _, c := range StaticTable() {
		inputs = append(inputs, c.Name)
	}
	for _, in := range inputs {
		once := Slug(in)
		assert.Equal(t, once, Slug(once), in)
	}
}

func TestNameFromSlugRoundTrip(t *testing.T) {
	table := StaticTable()
	for _, c := range table {
		assert.Equal(t, c.Name, NameFromSlug(Slug(c.Name), table))
	}
}

func TestNameFromSlugUnknown(t *testing.T) {
	assert.Equal(t, "Papua Barat Daya", NameFromSlug("papua-barat-daya", StaticTable()))
	assert.Equal(t, "Papua Tengah", NameFromSlug("papua--tengah", nil))
	assert.Equal(t, "", NameFromSlug("", nil))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Oily", "oily"},
		{"Dry / Sensitive", "dry-sensitive"},
		{"SPF 50+", "spf-50"},
		{"  Vitamin C  ", "vitamin-c"},
		{"Anti-Aging", "anti-aging"},
		{"Crème Brûlée", "crme-brle"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.label), "label %q", tc.label)
	}
}

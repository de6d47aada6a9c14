package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{name: "zero", n: 0, want: ""},
		{name: "negative", n: -3, want: ""},
		{name: "one", n: 1, want: "$1"},
		{name: "two", n: 2, want: "$1,$2"},
		{name: "five", n: 5, want: "$1,$2,$3,$4,$5"},
		{name: "double digits", n: 12, want: "$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Placeholders(tt.n))
		})
	}
}

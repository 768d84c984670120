package employees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name        string
		total, size int
		wantPages   int
	}{
		{"empty", 0, 10, 0},
		{"exact", 20, 10, 2},
		{"remainder", 21, 10, 3},
		{"single", 1, 100, 1},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := NewPage(nil, tc.total, 1, tc.size)
			assert.Equal(t, tc.wantPages, p.Pages)
			assert.NotNil(t, p.Items)
		})
	}
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "José Pérez", Employee{FirstName: "José", LastName: "Pérez"}.FullName())
	assert.Equal(t, "Ana", Employee{FirstName: "Ana"}.FullName())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_a\\b`, escapeLike(`100%_a\b`))
}

package movies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationFormat(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{90, "1h. 30m."},
		{45, "45m."},
		{60, "1h. 0m."},
		{167, "2h. 47m."},
	}

	for _, tt := range tests {
		m := Movie{DurationMinutes: tt.minutes}
		assert.Equal(t, tt.want, m.DurationFormat())
	}
}

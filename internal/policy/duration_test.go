package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDuration(t *testing.T) {
	cases := []struct {
		name  string
		ticks uint64
		want  bool
	}{
		{"below minimum", MinDurationTicks - 1, false},
		{"at minimum", MinDurationTicks, true},
		{"mid window", 1000, true},
		{"at maximum", MaxDurationTicks, true},
		{"above maximum", MaxDurationTicks + 1, false},
		{"zero", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidDuration(tc.ticks))
		})
	}
}

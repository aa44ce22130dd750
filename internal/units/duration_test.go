package units_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hybridkit/navcache/internal/units"
)

func TestCanDecodeDurationsFromYaml(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		val      string
		expected time.Duration
	}{
		{"30s", 30 * time.Second},
		{"1m30s", 90 * time.Second},
		{"5m", 5 * time.Minute},
	} {
		t.Run(tc.val, func(t *testing.T) {
			t.Parallel()

			d := units.Duration{}
			decoder := yaml.NewDecoder(bytes.NewBufferString(tc.val))

			require.NoError(t, decoder.Decode(&d))
			require.Equal(t, units.Duration{tc.expected}, d)
		})
	}
}

func TestRejectsInvalidDurations(t *testing.T) {
	t.Parallel()

	d := units.Duration{}
	decoder := yaml.NewDecoder(bytes.NewBufferString("fast"))

	require.ErrorIs(t, decoder.Decode(&d), units.ErrInvalidDurationFormat)
}

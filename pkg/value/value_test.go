package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Julian-Heng/sys-line-sub000/pkg/value"
)

func TestValue_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		bytes      float64
		prefix     value.Prefix
		want       float64
		wantPrefix value.Prefix
	}{
		{
			name:       "fixed prefix",
			bytes:      2048,
			prefix:     value.PrefixKiB,
			want:       2,
			wantPrefix: value.PrefixKiB,
		},
		{
			name:       "auto picks largest readable",
			bytes:      1536 * 1024 * 1024,
			prefix:     value.PrefixAuto,
			want:       1.5,
			wantPrefix: value.PrefixGiB,
		},
		{
			name:       "auto below one KiB stays bytes",
			bytes:      512,
			prefix:     value.PrefixAuto,
			want:       512,
			wantPrefix: value.PrefixByte,
		},
		{
			name:       "empty prefix behaves like auto",
			bytes:      4096,
			prefix:     "",
			want:       4,
			wantPrefix: value.PrefixKiB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, p := value.NewBytes(tt.bytes, tt.prefix, 2).Resolve()
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.wantPrefix, p)
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name   string
		v      value.Value
		want   string
	}{
		{
			name: "rounded to two places",
			v:    value.NewBytes(1536, value.PrefixKiB, 2),
			want: "1.5 KiB",
		},
		{
			name: "rounded to zero places",
			v:    value.NewBytes(1536, value.PrefixKiB, 0),
			want: "2 KiB",
		},
		{
			name: "negative round keeps full precision",
			v:    value.NewBytes(1100, value.PrefixKiB, -1),
			want: "1.07421875 KiB",
		},
		{
			name: "rate renders with suffix",
			v:    value.NewRate(2 * 1024 * 1024, value.PrefixMiB, 1),
			want: "2 MiB/s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValidPrefix(t *testing.T) {
	for _, p := range []string{"B", "KiB", "MiB", "GiB", "TiB", "auto"} {
		assert.True(t, value.ValidPrefix(p), p)
	}
	for _, p := range []string{"", "KB", "kib", "PiB"} {
		assert.False(t, value.ValidPrefix(p), p)
	}
}

func TestRound(t *testing.T) {
	require.InDelta(t, 42.57, value.Round(42.567, 2), 1e-9)
	require.InDelta(t, 43, value.Round(42.567, 0), 1e-9)
	require.InDelta(t, 42.567, value.Round(42.567, -1), 1e-9)
}

package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
)

func writeBatteryDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "BAT0")
	require.NoError(t, os.Mkdir(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content+"\n"), 0o644))
	}

	return root
}

func TestDetectBattery_ChargeVariant(t *testing.T) {
	root := writeBatteryDir(t, map[string]string{
		"type":        "Battery",
		"status":      "Charging",
		"charge_now":  "1500000",
		"charge_full": "3000000",
		"current_now": "500000",
		"voltage_now": "12000000",
	})

	src := detectBattery(root)
	require.NotNil(t, src)
	assert.Equal(t, "charge_now", src.nowFile)
	assert.Equal(t, "current_now", src.rateFile)
	assert.False(t, src.energy)
}

func TestDetectBattery_EnergyVariant(t *testing.T) {
	root := writeBatteryDir(t, map[string]string{
		"type":        "Battery",
		"status":      "Discharging",
		"energy_now":  "20000000",
		"energy_full": "50000000",
		"power_now":   "10000000",
	})

	src := detectBattery(root)
	require.NotNil(t, src)
	assert.Equal(t, "energy_now", src.nowFile)
	assert.Equal(t, "power_now", src.rateFile)
	assert.True(t, src.energy)
}

func TestDetectBattery_NoBattery(t *testing.T) {
	assert.Nil(t, detectBattery(t.TempDir()))
}

func TestBat_Query(t *testing.T) {
	cfg := config.DefaultConfig()
	root := writeBatteryDir(t, map[string]string{
		"type":        "Battery",
		"status":      "Charging",
		"capacity":    "50",
		"charge_now":  "1500000",
		"charge_full": "3000000",
		"current_now": "750000",
		"voltage_now": "12000000",
	})
	bat := &Bat{opts: cfg.Bat, root: root}

	present, err := bat.Query("is_present", nil)
	require.NoError(t, err)
	assert.Equal(t, true, present)

	charging, err := bat.Query("is_charging", nil)
	require.NoError(t, err)
	assert.Equal(t, true, charging)

	full, err := bat.Query("is_full", nil)
	require.NoError(t, err)
	assert.Equal(t, false, full)

	percent, err := bat.Query("percent", nil)
	require.NoError(t, err)
	assert.Equal(t, 50.0, percent)

	// (3000000-1500000)/750000 = 2h
	left, err := bat.Query("time", nil)
	require.NoError(t, err)
	assert.Equal(t, "2h 0m 0s", left)

	// 750000µA * 12000000µV / 1e12 = 9W
	power, err := bat.Query("power", nil)
	require.NoError(t, err)
	assert.Equal(t, 9.0, power)
}

func TestBat_QueryMissingBattery(t *testing.T) {
	cfg := config.DefaultConfig()
	bat := &Bat{opts: cfg.Bat, root: t.TempDir()}

	present, err := bat.Query("is_present", nil)
	require.NoError(t, err)
	assert.Equal(t, false, present)

	charging, err := bat.Query("is_charging", nil)
	require.NoError(t, err)
	assert.Nil(t, charging)

	_, err = bat.Query("nonexistent", nil)
	assert.Error(t, err)
}

func TestDate_Query(t *testing.T) {
	cfg := config.DefaultConfig()
	fixed := time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)
	date := &Date{opts: cfg.Date, now: func() time.Time { return fixed }}

	got, err := date.Query("date", nil)
	require.NoError(t, err)
	assert.Equal(t, "Fri, 07 Mar", got)

	got, err = date.Query("time", nil)
	require.NoError(t, err)
	assert.Equal(t, "14:30", got)

	// 覆盖布局
	opts := &config.DateOptions{Time: config.FormatOptions{Format: "15:04:05"}}
	got, err = date.Query("time", opts)
	require.NoError(t, err)
	assert.Equal(t, "14:30:00", got)
}

func TestSampleRate(t *testing.T) {
	t.Run("change yields positive rate", func(t *testing.T) {
		reads := []uint64{100, 100, 612}
		i := 0
		rate := sampleRate(func() (uint64, bool) {
			v := reads[i]
			if i < len(reads)-1 {
				i++
			}

			return v, true
		}, 500*time.Millisecond, time.Millisecond)
		assert.Greater(t, rate, 0.0)
	})

	t.Run("no change times out to zero", func(t *testing.T) {
		rate := sampleRate(func() (uint64, bool) {
			return 42, true
		}, 20*time.Millisecond, time.Millisecond)
		assert.Zero(t, rate)
	})

	t.Run("unreadable counter is zero", func(t *testing.T) {
		rate := sampleRate(func() (uint64, bool) {
			return 0, false
		}, 20*time.Millisecond, time.Millisecond)
		assert.Zero(t, rate)
	})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds uint64
		want    string
	}{
		{0, "0s"},
		{59, "59s"},
		{60, "1m 0s"},
		{3601, "1h 0m 1s"},
		{90061, "1d 1h 1m 1s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestParseDesktopNames(t *testing.T) {
	names := parseDesktopNames(`"web", "code", "misc"`)
	assert.Equal(t, []string{"web", "code", "misc"}, names)
}

func TestMappingPut(t *testing.T) {
	m := &Mapping{}
	m.Put("/dev/sda1", 1)
	m.Put("/dev/sda2", 2)
	m.Put("/dev/sda1", 3) // 重复 key 不改变顺序

	assert.Equal(t, []string{"/dev/sda1", "/dev/sda2"}, m.Keys)
	assert.Equal(t, 3, m.Values["/dev/sda1"])
}

func TestInfoTablesAreSorted(t *testing.T) {
	cfg := config.DefaultConfig()
	factories, err := Factories()
	if err != nil {
		t.Skipf("unsupported platform: %v", err)
	}

	for domain, factory := range factories {
		p := factory(&cfg)
		infos := p.Infos()
		assert.NotEmpty(t, infos, domain)
		assert.IsIncreasing(t, infos, domain)
	}
}

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("12.5, -40")
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{X: 12.5, Z: -40}, p)

	for _, bad := range []string{"", "1", "1,2,3", "a,2", "1,b"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestDescribeLOD(t *testing.T) {
	assert.Equal(t, "disabled (all Standard)", describeLOD(config.LODConfig{}))
	assert.Equal(t, "coarse from 20, very coarse from 60",
		describeLOD(config.LODConfig{Enabled: true, CoarseFrom: 20, VeryCoarseFrom: 60}))
}

func TestFormatCounts(t *testing.T) {
	assert.Equal(t, "9/16/56", formatCounts([3]int{9, 16, 56}))
}

func TestCmdWalkReturnsErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"bad from":     {"-from", "oops"},
		"bad to":       {"-to", "1,2,3"},
		"unknown flag": {"-nope"},
		"missing file": {"-config", filepath.Join(t.TempDir(), "absent.yaml")},
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, cmdWalk(args, &out))
			assert.Empty(t, out.String())
		})
	}
}

func TestCmdWalkReportsTotals(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cmdWalk([]string{"-to", "0,0", "-steps", "2"}, &out))

	report := out.String()
	assert.Contains(t, report, "Updates:      3\n")
	assert.Contains(t, report, "Boundaries:   0\n")
	assert.Contains(t, report, "Evicted:      0\n")
}

func TestCmdWalkDebugKeepsReportClean(t *testing.T) {
	defer func() { logger.Log = zap.NewNop(); logger.Sugar = logger.Log.Sugar() }()

	var out bytes.Buffer
	require.NoError(t, cmdWalk([]string{"-debug", "-to", "500,0", "-steps", "4"}, &out))
	assert.NotContains(t, out.String(), "DEBUG")
	assert.Contains(t, out.String(), "Updates:      5\n")
}

func TestCmdIndicesReturnsErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, cmdIndices(nil, &out))
	assert.Error(t, cmdIndices([]string{"x"}, &out))
	assert.Error(t, cmdIndices([]string{"7"}, &out))

	require.NoError(t, cmdIndices([]string{"-side", "5", "-cells", "1", "1"}, &out))
	assert.Contains(t, out.String(), "Triangles:  32\n")
}

func TestCmdConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer
	require.NoError(t, cmdConfig([]string{"-o", path}, &out))
	assert.Equal(t, "Wrote "+path+"\n", out.String())

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Terrain, cfg.Terrain)
}

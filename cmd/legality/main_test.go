package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magefree/mage-legality/internal/config"
	"github.com/magefree/mage-legality/internal/game/expr"
	"github.com/magefree/mage-legality/internal/game/restriction"
	"github.com/magefree/mage-legality/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func TestRun_PrintsVerdicts(t *testing.T) {
	sc, err := scenario.Load("../../internal/scenario/testdata/main_phase.yaml")
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	checker := restriction.NewChecker(expr.New(logger), restriction.WithLogger(logger))

	var out bytes.Buffer
	mismatches, err := run(&out, checker, sc)
	require.NoError(t, err)
	assert.Equal(t, 0, mismatches)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(sc.Candidates))
	assert.Equal(t, "Cast Rolling Thunder\tLEGAL", lines[0])
	assert.Equal(t, "Flash back Lightning Axe without permission\tILLEGAL zone: in Graveyard, needs Hand", lines[1])
	assert.Equal(t, "Mirror Universe\tILLEGAL default: phased out", lines[len(lines)-1])
}

func TestRun_CountsMismatches(t *testing.T) {
	sc, err := scenario.Decode(strings.NewReader(`
players:
  - name: Alice
cards:
  - name: Memnite
    owner: Alice
    types: [Artifact, Creature]
abilities:
  - name: tap
    card: Memnite
    activator: Alice
    params:
      ActivationPhases: Upkeep
    expect: {legal: true}
`))
	require.NoError(t, err)

	var out bytes.Buffer
	mismatches, err := run(&out, restriction.NewChecker(expr.New(nil)), sc)
	require.NoError(t, err)
	assert.Equal(t, 1, mismatches)
	assert.Equal(t, "tap\tILLEGAL timing: not an allowed step (unexpected)\n", out.String())
}

func TestRun_ReturnsEvaluationErrors(t *testing.T) {
	sc, err := scenario.Decode(strings.NewReader(`
players:
  - name: Alice
cards:
  - name: Memnite
    owner: Alice
    types: [Artifact, Creature]
abilities:
  - name: broken
    card: Memnite
    activator: Alice
    params:
      IsPresent: Gizmo
`))
	require.NoError(t, err)

	_, err = run(&bytes.Buffer{}, restriction.NewChecker(expr.New(nil)), sc)
	assert.ErrorContains(t, err, "broken")
}

func TestInitLogger(t *testing.T) {
	for _, tt := range []struct {
		cfg  config.LoggingConfig
		want zapcore.Level
	}{
		{config.LoggingConfig{Level: "debug", Format: "json"}, zapcore.DebugLevel},
		{config.LoggingConfig{Level: "warn", Format: "console"}, zapcore.WarnLevel},
		{config.LoggingConfig{Level: "error"}, zapcore.ErrorLevel},
		{config.LoggingConfig{Level: "loud"}, zapcore.InfoLevel},
	} {
		logger, err := initLogger(tt.cfg)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(tt.want))
		assert.False(t, logger.Core().Enabled(tt.want-1))
	}
}

func TestLegality_ExitCodes(t *testing.T) {
	mismatch := filepath.Join(t.TempDir(), "mismatch.yaml")
	require.NoError(t, os.WriteFile(mismatch, []byte(`
players:
  - name: Alice
cards:
  - name: Memnite
    owner: Alice
    types: [Artifact, Creature]
abilities:
  - card: Memnite
    expect: {legal: false, stage: timing}
`), 0o600))

	fixture := "../../internal/scenario/testdata/main_phase.yaml"
	assert.Equal(t, 2, legality("", ""))
	assert.Equal(t, 0, legality("", fixture))
	assert.Equal(t, 1, legality("missing.yaml", fixture))
	assert.Equal(t, 1, legality("", "missing.yaml"))
	assert.Equal(t, 3, legality("", mismatch))
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gatherspin/internal/domain"
)

func TestLoad_ShouldParsePositionalCategoryAndColors(t *testing.T) {
	// Act
	cfg, err := Load([]string{"full", "3"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.Full, cfg.Category)
	assert.Equal(t, uint8(3), cfg.NumColors)
	assert.Equal(t, domain.Async, cfg.Scheduler)
}

func TestLoad_ShouldError_WhenPositionalArgsMissing(t *testing.T) {
	// Act
	_, err := Load([]string{"full"})

	// Assert
	require.Error(t, err)
}

func TestLoad_ShouldError_WhenCategoryUnknown(t *testing.T) {
	// Act
	_, err := Load([]string{"bogus", "2"})

	// Assert
	require.Error(t, err)
}

func TestLoad_ShouldError_WhenNumColorsIsZero(t *testing.T) {
	// Act
	_, err := Load([]string{"full", "0"})

	// Assert
	require.Error(t, err)
}

func TestLoad_ShouldSetToFile_WhenOutPathGiven(t *testing.T) {
	// Act
	cfg, err := Load([]string{"-o", "results/run.txt", "full", "2"})

	// Assert
	require.NoError(t, err)
	assert.True(t, cfg.ToFile)
	assert.Equal(t, "results/run.txt", cfg.OutputPath)
}

func TestLoad_ShouldParseSchedulerRigidAndQuasiSS(t *testing.T) {
	// Act
	cfg, err := Load([]string{"-s", "ssync", "--rigid", "-Q", "external", "4"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.SSYNC, cfg.Scheduler)
	assert.True(t, cfg.Rigid)
	assert.True(t, cfg.QuasiSS)
}

func TestSuggestedName_ShouldMatchDefaultFilenameFormat(t *testing.T) {
	cfg := RunConfig{
		Category:   domain.External,
		NumColors:  4,
		ClassL:     true,
		Sequential: false,
		Scheduler:  domain.AsyncLCAtomic,
		Rigid:      true,
		QuasiSS:    true,
	}

	// Act
	got := cfg.SuggestedName()

	// Assert
	assert.Equal(t, "parout_L_external_4_async-lc-atomic_rigid_qss.txt", got)
}

func TestSuggestedName_ShouldUseOutputPrefix_WhenSequential(t *testing.T) {
	cfg := RunConfig{Category: domain.Full, NumColors: 2, Sequential: true, Scheduler: domain.Centralized}

	got := cfg.SuggestedName()

	assert.Equal(t, "output_full_2_centralized.txt", got)
}

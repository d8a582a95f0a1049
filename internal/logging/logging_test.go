package logging

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_ShouldDefaultToInfoLevel_WhenLevelUnparseable(t *testing.T) {
	log := New("not-a-level", os.Stderr)

	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNew_ShouldHonorExplicitLevel(t *testing.T) {
	log := New("debug", os.Stderr)

	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
}

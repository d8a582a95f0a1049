package promela

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/gatherspin/internal/domain"
)

func TestGeneratorArgs_ShouldAlwaysIncludeScheduler(t *testing.T) {
	opts := RunOptions{Scheduler: domain.Async}

	assert.Equal(t, []string{"-DSCHEDULER=ASYNC"}, opts.GeneratorArgs())
}

func TestGeneratorArgs_ShouldAppendRigidAndQuasiSS_WhenSet(t *testing.T) {
	opts := RunOptions{Scheduler: domain.SSYNC, Rigid: true, QuasiSS: true}

	assert.Equal(t, []string{"-DSCHEDULER=SSYNC", "-DMOVEMENT=RIGID", "-DQUASISS"}, opts.GeneratorArgs())
}

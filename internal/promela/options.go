package promela

import "github.com/katalvlaran/gatherspin/internal/domain"

// RunOptions are the options passed to the verifier-source generator
// beyond the always-on "-a" and "-DALGO=SYNTH", which the Verifier
// implementation (verify.ProcessVerifier.Generate) adds itself.
type RunOptions struct {
	Scheduler domain.Scheduler
	Rigid     bool
	QuasiSS   bool
}

// GeneratorArgs renders the -DSCHEDULER/-DMOVEMENT/-DQUASISS arguments,
// in that order, for the external verifier-source generator invocation.
func (o RunOptions) GeneratorArgs() []string {
	args := []string{"-DSCHEDULER=" + o.Scheduler.AsPromela()}
	if o.Rigid {
		args = append(args, "-DMOVEMENT=RIGID")
	}
	if o.QuasiSS {
		args = append(args, "-DQUASISS")
	}
	return args
}

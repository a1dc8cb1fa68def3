package install

// Phase names a step of the install sequence. Phases run strictly in order.
type Phase int

const (
	PhaseProbeInitial Phase = iota + 1
	PhaseSkipCheck
	PhaseResolve
	PhaseAlreadyCurrent
	PhaseCacheLookup
	PhaseMaterialize
	PhaseActivate
	PhaseVerifyFinal
)

// String returns the phase name used in log output.
func (p Phase) String() string {
	switch p {
	case PhaseProbeInitial:
		return "probe-initial"
	case PhaseSkipCheck:
		return "skip-check"
	case PhaseResolve:
		return "resolve"
	case PhaseAlreadyCurrent:
		return "already-current"
	case PhaseCacheLookup:
		return "cache-lookup"
	case PhaseMaterialize:
		return "materialize"
	case PhaseActivate:
		return "activate"
	case PhaseVerifyFinal:
		return "verify-final"
	default:
		return "unknown"
	}
}

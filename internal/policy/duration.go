package policy

// Grant lifetime bounds in logical clock ticks. At the nominal tick rate these
// correspond to roughly 24 hours and one year. They are fixed policy, not
// per-call configuration.
const (
	MinDurationTicks uint64 = 144
	MaxDurationTicks uint64 = 52560
)

// IsValidDuration reports whether a requested grant lifetime lies within the
// fixed policy window.
func IsValidDuration(ticks uint64) bool {
	return ticks >= MinDurationTicks && ticks <= MaxDurationTicks
}

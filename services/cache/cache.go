package cache

// Outcome is a memoised existence-probe result. Unknown means nothing is
// stored for the page.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeExists
	OutcomeAbsent
)

// ProbeCache memoises definitive probe outcomes across runs so repeated
// auto-discovery does not re-probe pages whose status is already known
type ProbeCache interface {
	// GetOutcome returns the memoised outcome for a page id, or
	// OutcomeUnknown on a miss
	GetOutcome(id int) Outcome

	// SetOutcome memoises a definitive outcome for a page id
	SetOutcome(id int, exists bool) error
}

package reel

import "log"

// State tracks how far a reel job has progressed. Transitions move
// strictly forward; any state may jump to StateFailed.
type State string

const (
	StateInit                State = "INIT"
	StateContentFetched      State = "CONTENT_FETCHED"
	StateSegmentsSynthesized State = "SEGMENTS_SYNTHESIZED"
	StateBackgroundReady     State = "BACKGROUND_READY"
	StateAssembled           State = "ASSEMBLED"
	StateRelocated           State = "RELOCATED"
	StateCleaned             State = "CLEANED"
	StateDone                State = "DONE"
	StateFailed              State = "FAILED"
)

// Job is one reel generation run.
type Job struct {
	ReelID string
	URL    string
	State  State
}

func (j *Job) setState(s State) {
	log.Printf("Reel %s: %s -> %s", j.ReelID, j.State, s)
	j.State = s
}

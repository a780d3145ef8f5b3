package events

import "time"

// ComposeStart is emitted when a composition run begins.
type ComposeStart struct {
	Target string
}

// ComposeFinish is emitted after a composition run completes.
type ComposeFinish struct {
	Target    string
	Subgraphs int
	Bytes     int
	Err       error
	Duration  time.Duration
}

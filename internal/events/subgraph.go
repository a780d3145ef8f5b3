package events

import "time"

// SubgraphLoadStart is emitted before reading and parsing one
// subgraph schema.
type SubgraphLoadStart struct {
	Subgraph string
}

// SubgraphLoadFinish is emitted after the subgraph schema is parsed.
type SubgraphLoadFinish struct {
	Subgraph string
	Err      error
	Duration time.Duration
}

package events

// BuildStart is emitted before merging a loaded subgraph set.
type BuildStart struct {
	Subgraphs int
}

// BuildFinish is emitted after merging succeeds.
type BuildFinish struct {
	Types    int
	Entities int
}

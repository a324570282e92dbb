package ui

// RepeatMode decides what happens when a track ends.
type RepeatMode int

const (
	RepeatAll RepeatMode = iota // advance, wrapping at the end of the queue
	RepeatOne                   // loop the current track
)

// Next cycles to the next repeat mode.
func (r RepeatMode) Next() RepeatMode {
	if r == RepeatAll {
		return RepeatOne
	}
	return RepeatAll
}

// Icon returns a visual indicator for the repeat mode.
func (r RepeatMode) Icon() string {
	if r == RepeatOne {
		return "[repeat one]"
	}
	return ""
}

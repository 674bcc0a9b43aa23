package views

import "sync/atomic"

// sequencer hands out per-view request tokens so a slow response that was
// superseded by a newer request is discarded instead of rendering stale
// results over fresh ones.
type sequencer struct {
	n atomic.Uint64
}

func (s *sequencer) next() uint64 {
	return s.n.Add(1)
}

func (s *sequencer) current(token uint64) bool {
	return s.n.Load() == token
}

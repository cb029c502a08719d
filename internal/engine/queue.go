package engine

import "voxelmesh/internal/world"

// coordQueue is a FIFO of chunk coordinates with set-membership dedupe: a
// coordinate appears at most once in the queue at any time, and enqueueing
// one already present is a no-op.
type coordQueue struct {
	items  []world.ChunkCoord
	member map[world.ChunkCoord]struct{}
}

func newCoordQueue() *coordQueue {
	return &coordQueue{member: make(map[world.ChunkCoord]struct{})}
}

// Enqueue appends coord unless it is already queued. Reports whether the
// coordinate was added.
func (q *coordQueue) Enqueue(coord world.ChunkCoord) bool {
	if _, ok := q.member[coord]; ok {
		return false
	}
	q.member[coord] = struct{}{}
	q.items = append(q.items, coord)
	return true
}

// Dequeue pops the oldest coordinate.
func (q *coordQueue) Dequeue() (world.ChunkCoord, bool) {
	if len(q.items) == 0 {
		return world.ChunkCoord{}, false
	}
	coord := q.items[0]
	q.items = q.items[1:]
	delete(q.member, coord)
	if len(q.items) == 0 {
		q.items = nil
	}
	return coord, true
}

// Contains reports whether coord is currently queued.
func (q *coordQueue) Contains(coord world.ChunkCoord) bool {
	_, ok := q.member[coord]
	return ok
}

// Len returns the number of queued coordinates.
func (q *coordQueue) Len() int {
	return len(q.items)
}

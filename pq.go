package astar

import (
	"container/heap"
	"slices"
)

type openItem struct {
	Cell         CellID
	FCost        float64
	Seq          uint64
	IndexInQueue int
}

// openQueue orders by f and then by insertion sequence, so among equal f the
// earliest discovered cell wins, exactly as a left-to-right scan of an
// insertion-ordered list would.
type openQueue []*openItem

func (queue openQueue) Len() int { return len(queue) }
func (queue openQueue) Less(i, j int) bool {
	if queue[i].FCost != queue[j].FCost {
		return queue[i].FCost < queue[j].FCost
	}
	return queue[i].Seq < queue[j].Seq
}
func (queue openQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *openQueue) Push(x any) {
	item := x.(*openItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *openQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// openSet pairs the queue with O(1) membership by cell.
type openSet struct {
	queue   openQueue
	members []*openItem
	nextSeq uint64
}

func newOpenSet(cells int) *openSet {
	return &openSet{members: make([]*openItem, cells)}
}

func (s *openSet) Len() int { return s.queue.Len() }

func (s *openSet) Contains(id CellID) bool { return s.members[id] != nil }

// Add inserts id at the back of the insertion order.
func (s *openSet) Add(id CellID, f float64) {
	item := &openItem{Cell: id, FCost: f, Seq: s.nextSeq}
	s.nextSeq++
	s.members[id] = item
	heap.Push(&s.queue, item)
}

// Update changes the priority of a member without touching its insertion order.
func (s *openSet) Update(id CellID, f float64) {
	item := s.members[id]
	item.FCost = f
	heap.Fix(&s.queue, item.IndexInQueue)
}

// PopMin removes and returns the member with the lowest f.
func (s *openSet) PopMin() CellID {
	item := heap.Pop(&s.queue).(*openItem)
	s.members[item.Cell] = nil
	return item.Cell
}

// Cells returns the members in insertion order.
func (s *openSet) Cells() []CellID {
	items := slices.Clone(s.queue)
	slices.SortFunc(items, func(a, b *openItem) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})
	out := make([]CellID, len(items))
	for i, item := range items {
		out[i] = item.Cell
	}
	return out
}

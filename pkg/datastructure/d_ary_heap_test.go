package datastructure

import (
	"testing"

	"pgregory.net/rapid"
)

func TestExtractMinOrder(t *testing.T) {
	testCases := []struct {
		name  string
		ranks []float64
		want  []float64
	}{
		{
			name:  "shuffled ranks pop sorted",
			ranks: []float64{5.0, 1.0, 4.0, 2.0, 3.0},
			want:  []float64{1.0, 2.0, 3.0, 4.0, 5.0},
		},
		{
			name:  "already sorted",
			ranks: []float64{1.0, 2.0, 3.0},
			want:  []float64{1.0, 2.0, 3.0},
		},
		{
			name:  "single entry",
			ranks: []float64{7.0},
			want:  []float64{7.0},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := NewFourAryHeap[EikonalQueryKey]()
			for i, r := range tt.ranks {
				h.Insert(NewPriorityQueueNode(r, int64(i), NewEikonalQueryKey(Index(i))))
			}
			for i, want := range tt.want {
				node, err := h.ExtractMin()
				if err != nil {
					t.Fatalf("err: %v", err)
				}
				if node.GetRank() != want {
					t.Errorf("pop %d: got rank %v, want %v", i, node.GetRank(), want)
				}
			}
			if !h.IsEmpty() {
				t.Errorf("heap should be empty after popping all entries")
			}
		})
	}
}

func TestTieBreakLowestCellFirst(t *testing.T) {
	h := NewFourAryHeap[EikonalQueryKey]()
	for _, cell := range []Index{4, 1, 3, 0, 2} {
		h.Insert(NewPriorityQueueNode(1.0, int64(cell), NewEikonalQueryKey(cell)))
	}
	for want := Index(0); want < 5; want++ {
		node, err := h.ExtractMin()
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		key := node.GetItem()
		if key.GetCell() != want {
			t.Errorf("equal ranks must pop lowest cell first: got %d, want %d", key.GetCell(), want)
		}
	}
}

func TestDecreaseKeyMovesEntryUp(t *testing.T) {
	h := NewFourAryHeap[EikonalQueryKey]()
	nodes := make([]*PriorityQueueNode[EikonalQueryKey], 0, 4)
	for i, r := range []float64{1.0, 5.0, 6.0, 7.0} {
		node := NewPriorityQueueNode(r, int64(i), NewEikonalQueryKey(Index(i)))
		nodes = append(nodes, node)
		h.Insert(node)
	}

	if err := h.DecreaseKey(nodes[3], 0.5); err != nil {
		t.Fatalf("err: %v", err)
	}
	node, err := h.GetMin()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	key := node.GetItem()
	if key.GetCell() != 3 || node.GetRank() != 0.5 {
		t.Errorf("decreased entry should be the new minimum, got cell %d rank %v",
			key.GetCell(), node.GetRank())
	}
}

func TestDecreaseKeyRejectsLargerRank(t *testing.T) {
	h := NewFourAryHeap[EikonalQueryKey]()
	node := NewPriorityQueueNode(2.0, 0, NewEikonalQueryKey(0))
	h.Insert(node)

	if err := h.DecreaseKey(node, 3.0); err == nil {
		t.Error("decrease-key with a larger rank must be rejected")
	}
	if node.GetRank() != 2.0 {
		t.Errorf("rejected decrease-key must not change the rank, got %v", node.GetRank())
	}
}

func TestDecreaseKeyRejectsPoppedEntry(t *testing.T) {
	h := NewFourAryHeap[EikonalQueryKey]()
	node := NewPriorityQueueNode(2.0, 0, NewEikonalQueryKey(0))
	h.Insert(node)
	if _, err := h.ExtractMin(); err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := h.DecreaseKey(node, 1.0); err == nil {
		t.Error("decrease-key on a released handle must be rejected")
	}
}

// Random insert/decrease-key workloads always pop in non-decreasing rank order.
func TestHeapOrderingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := NewFourAryHeap[EikonalQueryKey]()
		n := rapid.IntRange(1, 64).Draw(t, "n")
		nodes := make([]*PriorityQueueNode[EikonalQueryKey], n)
		for i := 0; i < n; i++ {
			rank := rapid.Float64Range(0, 100).Draw(t, "rank")
			nodes[i] = NewPriorityQueueNode(rank, int64(i), NewEikonalQueryKey(Index(i)))
			h.Insert(nodes[i])
		}

		numDecreases := rapid.IntRange(0, n).Draw(t, "numDecreases")
		for i := 0; i < numDecreases; i++ {
			idx := rapid.IntRange(0, n-1).Draw(t, "idx")
			newRank := rapid.Float64Range(0, nodes[idx].GetRank()).Draw(t, "newRank")
			if err := h.DecreaseKey(nodes[idx], newRank); err != nil {
				t.Fatalf("err: %v", err)
			}
		}

		prev := -1.0
		for !h.IsEmpty() {
			node, err := h.ExtractMin()
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if node.GetRank() < prev {
				t.Fatalf("pop order not non-decreasing: %v after %v", node.GetRank(), prev)
			}
			prev = node.GetRank()
		}
	})
}

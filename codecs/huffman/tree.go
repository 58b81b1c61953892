package huffman

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/lowpix"
)

// code is the bit string assigned to one symbol. The first bit sent is the most
// significant of the length bits.
type code struct {
	bits   uint32
	length int
}

// tree is a Huffman tree stored as an arena of nodes addressed by id.
//
// Id 0 is the null node. Ids 1 through symbols are the leaves, and leaf id-1
// is the symbol it stands for. Merged nodes are numbered after the leaves in
// the order they were created.
type tree struct {
	symbols int
	weight  []uint32
	left    []int
	right   []int
	parent  []int
	// isLeft is true if the node is the left child of its parent.
	isLeft []bool
	// present marks the leaves that take part in the tree.
	present bitmap.Bitmap
	root    int
}

func newTree(symbols int) *tree {
	nodes := 2*symbols + 1
	return &tree{
		symbols: symbols,
		weight:  make([]uint32, nodes),
		left:    make([]int, nodes),
		right:   make([]int, nodes),
		parent:  make([]int, nodes),
		isLeft:  make([]bool, nodes),
		present: bitmap.New(symbols + 1),
	}
}

func (t *tree) isLeaf(id int) bool {
	return id <= t.symbols
}

// siftDown restores the heap order of ids[1:n+1] below position i, ordering by
// weight. ids is 1-based: ids[0] is unused.
//
// When two children have the same weight the left one wins, and a node stays
// put if its weight equals the smaller child's. Both rules decide which of
// several equal-weight nodes is merged first, and so the exact output.
func siftDown(ids []int, weight []uint32, n, i int) {
	k := ids[i]
	for i <= n/2 {
		j := 2 * i
		if j < n && weight[ids[j]] > weight[ids[j+1]] {
			j++
		}
		if weight[k] <= weight[ids[j]] {
			break
		}
		ids[i] = ids[j]
		i = j
	}
	ids[i] = k
}

// buildTree builds the tree for the given symbol frequencies.
//
// The merge loop runs once per leaf rather than once per merge. The last pass
// merges the real root with itself, so the root is the next-to-last node
// created and that extra node is discarded.
func buildTree(freqs []uint32) *tree {
	t := newTree(len(freqs))

	count := 0
	for symbol, freq := range freqs {
		if freq > 0 {
			t.present.Set(symbol+1, true)
			count++
		}
		t.weight[symbol+1] = freq
	}

	if count == 1 {
		// A lone symbol would leave the root a leaf, which the table format can't
		// express. Give it a sibling that's never emitted.
		phantom := 1
		if t.present.Get(phantom) {
			phantom = 2
		}
		t.present.Set(phantom, true)
		count++
	}

	ids := make([]int, 1, t.symbols+2)
	for id := 1; id <= t.symbols; id++ {
		if t.present.Get(id) {
			ids = append(ids, id)
		}
	}
	n := count
	for i := n; i > 0; i-- {
		siftDown(ids, t.weight, n, i)
	}

	next := t.symbols
	for n > 0 {
		lowest := ids[1]
		ids[1] = ids[n]
		n--
		siftDown(ids, t.weight, n, 1)

		next++
		t.weight[next] = t.weight[ids[1]] + t.weight[lowest]
		t.left[next] = ids[1]
		t.right[next] = lowest
		t.parent[ids[1]] = next
		t.isLeft[ids[1]] = true
		t.parent[lowest] = next
		t.isLeft[lowest] = false

		ids[1] = next
		siftDown(ids, t.weight, n, 1)
	}

	t.root = next - 1
	t.parent[t.root] = 0
	t.isLeft[t.root] = false
	return t
}

// codes walks from every leaf up to the root and returns the code of each
// symbol. Symbols that don't occur get a zero-length code.
func (t *tree) codes() ([]code, error) {
	codes := make([]code, t.symbols)
	for symbol := range codes {
		if !t.present.Get(symbol + 1) {
			continue
		}

		var c code
		for node := symbol + 1; t.parent[node] != 0; node = t.parent[node] {
			if c.length < maxCodeLength && !t.isLeft[node] {
				c.bits |= 1 << c.length
			}
			c.length++
		}

		if c.length >= maxCodeLength {
			return nil, lowpix.ErrEncodingOverflow.WithMessage(
				fmt.Sprintf("symbol %#x needs a %d-bit code", symbol, c.length))
		}
		codes[symbol] = c
	}
	return codes, nil
}

package huffman

import (
	"fmt"

	"github.com/dargueta/lowpix"
)

const (
	// maxOffset is the largest child offset a branch node can hold.
	maxOffset     = 0x3F
	leftLeafFlag  = 0x80
	rightLeafFlag = 0x40
)

// serialize flattens the tree into the node table the hardware walks.
//
// Nodes are laid out breadth first, one tier per depth. Each branch byte holds
// the offset to its pair of children and flags telling whether each child is a
// leaf; each leaf byte holds its symbol. Children always sit side by side,
// left first.
func (t *tree) serialize(codes []code) ([]byte, error) {
	// tiers[d+1] starts as the number of leaves at depth d. Folding pairs upward
	// adds the branches, and the prefix sum turns the counts into the offset
	// each depth starts at.
	var tiers [maxCodeLength + 2]int
	maxTier := 0
	for symbol, c := range codes {
		if !t.present.Get(symbol + 1) {
			continue
		}
		tier := c.length + 1
		tiers[tier]++
		maxTier = max(maxTier, tier)
	}
	for i := maxTier - 1; i >= 0; i-- {
		tiers[i] += tiers[i+1] / 2
	}
	for i := 0; i < maxTier; i++ {
		tiers[i+1] += tiers[i]
	}

	table := make([]byte, tiers[maxTier])
	if err := t.fill(table, tiers[:], t.root, 0); err != nil {
		return nil, err
	}
	return table, nil
}

// fill writes node id into its tier, then its right sibling if id is a left
// child. Branches write their children's subtree before themselves so that the
// next free slot of the tier below is known.
func (t *tree) fill(table []byte, tiers []int, id, tier int) error {
	if !t.isLeaf(id) {
		if err := t.fill(table, tiers, t.left[id], tier+1); err != nil {
			return err
		}

		offset := (tiers[tier+1] - tiers[tier] - 3) / 2
		if offset > maxOffset {
			return lowpix.ErrEncodingOverflow.WithMessage(
				fmt.Sprintf(
					"branch at depth %d needs child offset %d, limit is %d",
					tier,
					offset,
					maxOffset,
				),
			)
		}

		entry := byte(offset)
		if t.isLeaf(t.left[id]) {
			entry |= leftLeafFlag
		}
		if t.isLeaf(t.right[id]) {
			entry |= rightLeafFlag
		}
		table[tiers[tier]] = entry
	} else {
		table[tiers[tier]] = byte(id - 1)
	}
	tiers[tier]++

	if parent := t.parent[id]; parent != 0 && t.isLeft[id] {
		return t.fill(table, tiers, t.right[parent], tier)
	}
	return nil
}

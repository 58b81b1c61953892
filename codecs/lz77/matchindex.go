package lz77

const (
	// ringSize is the size of the sliding window. Distances are 12 bits.
	ringSize = 4096
	ringMask = ringSize - 1
	// maxMatch is the longest match a token can describe.
	maxMatch = 18
	// threshold is the longest match that's still cheaper as literals.
	threshold = 2
	// nilNode marks an empty link. It's one past the last ring position.
	nilNode = ringSize
)

// matchIndex finds the longest earlier occurrence of the string starting at a
// ring position. Every position in the window is a node in one of 256 binary
// search trees, one per leading byte, ordered by the maxMatch bytes starting
// there.
type matchIndex struct {
	// text is the ring buffer. The first maxMatch-1 bytes are mirrored past the
	// end so a comparison never has to wrap.
	text [ringSize + maxMatch - 1]byte

	left   [ringSize + 1]int
	parent [ringSize + 1]int
	// right holds one extra slot per leading byte: right[ringSize+1+c] is the
	// root of the tree for strings starting with c.
	right [ringSize + 257]int

	// matchPos and matchLen are set by insert to the best match it found. Read
	// them through longestMatch.
	matchPos int
	matchLen int
}

func newMatchIndex() *matchIndex {
	m := &matchIndex{}
	for i := ringSize + 1; i < len(m.right); i++ {
		m.right[i] = nilNode
	}
	for i := 0; i < ringSize; i++ {
		m.parent[i] = nilNode
	}
	return m
}

// put stores c at ring position pos, keeping the mirror in sync.
func (m *matchIndex) put(pos int, c byte) {
	m.text[pos] = c
	if pos < maxMatch-1 {
		m.text[pos+ringSize] = c
	}
}

// insert adds the string at ring position r to its tree and records the longest
// match against the strings already there.
//
// A match against the position just before r is never taken: a distance of 1
// makes the hardware read back a byte it's still writing, which doesn't work
// with 16-bit VRAM writes. If a full-length match is found, the old node is
// replaced by r since it leaves the window sooner.
func (m *matchIndex) insert(r int) {
	key := m.text[r : r+maxMatch]
	p := ringSize + 1 + int(key[0])
	cmp := 1

	m.left[r] = nilNode
	m.right[r] = nilNode
	m.matchLen = 0

	for {
		if cmp >= 0 {
			if m.right[p] == nilNode {
				m.right[p] = r
				m.parent[r] = p
				return
			}
			p = m.right[p]
		} else {
			if m.left[p] == nilNode {
				m.left[p] = r
				m.parent[r] = p
				return
			}
			p = m.left[p]
		}

		i := 1
		for ; i < maxMatch; i++ {
			cmp = int(key[i]) - int(m.text[p+i])
			if cmp != 0 {
				break
			}
		}

		if i > m.matchLen {
			if p != (r-1)&ringMask {
				m.matchLen = i
				m.matchPos = p
			}
			if m.matchLen >= maxMatch {
				break
			}
		}
	}

	// p holds the same string as r. Put r in its place.
	m.parent[r] = m.parent[p]
	m.left[r] = m.left[p]
	m.right[r] = m.right[p]
	m.parent[m.left[p]] = r
	m.parent[m.right[p]] = r
	m.replaceChild(p, r)
	m.parent[p] = nilNode
}

// longestMatch returns the ring position and length of the match found by the
// last call to insert. A length of zero means there was nothing to match.
func (m *matchIndex) longestMatch() (pos, length int) {
	return m.matchPos, m.matchLen
}

// remove takes ring position p out of its tree, if it's in one.
func (m *matchIndex) remove(p int) {
	if m.parent[p] == nilNode {
		return
	}

	var q int
	switch {
	case m.right[p] == nilNode:
		q = m.left[p]
	case m.left[p] == nilNode:
		q = m.right[p]
	default:
		// Two children: promote the rightmost node of the left subtree.
		q = m.left[p]
		if m.right[q] != nilNode {
			for m.right[q] != nilNode {
				q = m.right[q]
			}
			m.right[m.parent[q]] = m.left[q]
			m.parent[m.left[q]] = m.parent[q]
			m.left[q] = m.left[p]
			m.parent[m.left[p]] = q
		}
		m.right[q] = m.right[p]
		m.parent[m.right[p]] = q
	}

	m.parent[q] = m.parent[p]
	m.replaceChild(p, q)
	m.parent[p] = nilNode
}

// replaceChild points the link from old's parent at replacement instead.
func (m *matchIndex) replaceChild(old, replacement int) {
	dad := m.parent[old]
	if m.right[dad] == old {
		m.right[dad] = replacement
	} else {
		m.left[dad] = replacement
	}
}

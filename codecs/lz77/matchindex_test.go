package lz77

import (
	"bytes"
	mathrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walk returns the nodes of the tree for strings starting with c, in order,
// checking the parent links on the way.
func (m *matchIndex) walk(t *testing.T, c byte) []int {
	var nodes []int
	var visit func(node, dad int)
	visit = func(node, dad int) {
		if node == nilNode {
			return
		}
		require.Equal(t, dad, m.parent[node], "bad parent link at %d", node)
		visit(m.left[node], node)
		nodes = append(nodes, node)
		visit(m.right[node], node)
	}

	root := ringSize + 1 + int(c)
	visit(m.right[root], root)
	return nodes
}

func (m *matchIndex) key(pos int) []byte {
	return m.text[pos : pos+maxMatch]
}

func TestMatchIndex__InsertAndRemoveKeepOrder(t *testing.T) {
	m := newMatchIndex()
	rng := mathrand.New(mathrand.NewSource(17))
	for i := 0; i < ringSize; i++ {
		m.put(i, byte(rng.Intn(4)))
	}

	for pos := 0; pos < 600; pos++ {
		m.insert(pos)
	}
	for pos := 0; pos < 600; pos += 3 {
		m.remove(pos)
	}
	// Removing something that isn't there is a no-op.
	m.remove(1000)

	total := 0
	for c := 0; c < 4; c++ {
		nodes := m.walk(t, byte(c))
		total += len(nodes)
		for i := 1; i < len(nodes); i++ {
			require.Negative(
				t,
				bytes.Compare(m.key(nodes[i-1]), m.key(nodes[i])),
				"nodes %d and %d are out of order",
				nodes[i-1],
				nodes[i],
			)
		}
	}
	assert.Equal(t, 400, total)
}

func TestMatchIndex__SkipsPreviousPosition(t *testing.T) {
	m := newMatchIndex()
	for i := 0; i < 40; i++ {
		m.put(i, 'x')
	}

	m.insert(0)
	_, length := m.longestMatch()
	assert.Zero(t, length)
	m.insert(1)
	_, length = m.longestMatch()
	assert.Zero(t, length, "the match one byte back must be ignored")

	m.insert(2)
	pos, length := m.longestMatch()
	assert.Equal(t, maxMatch, length)
	assert.Equal(t, 0, pos)
	assert.Equal(t, nilNode, m.parent[0], "full match should replace the older node")
}

func TestMatchIndex__KeepsFirstOfEqualMatches(t *testing.T) {
	m := newMatchIndex()
	for pos, text := range map[int]string{0: "abcX", 10: "abcY", 20: "abcZ"} {
		for i := range text {
			m.put(pos+i, text[i])
		}
	}

	m.insert(0)
	m.insert(10)
	pos, length := m.longestMatch()
	assert.Equal(t, 0, pos)
	assert.Equal(t, 3, length)

	// Both earlier strings match three bytes. The one found first on the way
	// down the tree wins.
	m.insert(20)
	pos, length = m.longestMatch()
	assert.Equal(t, 0, pos)
	assert.Equal(t, 3, length)
}

func TestMatchIndex__MirrorsStartOfRing(t *testing.T) {
	m := newMatchIndex()
	m.put(0, 0xAB)
	m.put(maxMatch-2, 0xCD)
	m.put(maxMatch-1, 0xEF)

	assert.EqualValues(t, 0xAB, m.text[ringSize])
	assert.EqualValues(t, 0xCD, m.text[ringSize+maxMatch-2])
	assert.Len(t, m.text, ringSize+maxMatch-1)
}

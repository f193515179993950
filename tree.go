package squeeze

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// noChild marks the absent children of a leaf.
const noChild = int32(-1)

// maxTreeLeaves is the number of distinct byte values.
const maxTreeLeaves = 256

// HuffmanNode is either a leaf carrying a byte value or an internal node
// with exactly two children.  Children are indices into the owning
// HuffmanTree's node arena.
type HuffmanNode struct {
	Leaf  bool
	Value byte
	Left  int32
	Right int32
}

// HuffmanTree is a Huffman code tree.  Each node is owned by exactly one
// parent; traversal is top-down only.
type HuffmanTree struct {
	nodes []HuffmanNode
	root  int32
}

// Root returns the index of the root node.
func (t *HuffmanTree) Root() int32 {
	return t.root
}

// Node returns the node at index i.
func (t *HuffmanTree) Node(i int32) HuffmanNode {
	return t.nodes[i]
}

// NumLeaves returns the number of leaves in the tree.
func (t *HuffmanTree) NumLeaves() int {
	var n int
	for _, node := range t.nodes {
		if node.Leaf {
			n++
		}
	}
	return n
}

func (t *HuffmanTree) addLeaf(value byte) int32 {
	t.nodes = append(t.nodes, HuffmanNode{Leaf: true, Value: value, Left: noChild, Right: noChild})
	return int32(len(t.nodes) - 1)
}

func (t *HuffmanTree) addInternal(left, right int32) int32 {
	t.nodes = append(t.nodes, HuffmanNode{Left: left, Right: right})
	return int32(len(t.nodes) - 1)
}

// BuildHuffmanTree builds a Huffman tree from a frequency table.
//
// An empty table yields ErrEmptyInput.  A table with one symbol yields a
// tree consisting of a single leaf.  Otherwise the two lowest-frequency nodes
// are repeatedly merged under a new internal node, the first one removed
// becoming the left child.
//
// Ties are broken deterministically: among nodes of equal frequency, the
// node created first is removed first.  Leaves are created in ascending
// symbol order before any internal node, and internal nodes are created in
// merge order.
//
func BuildHuffmanTree(table FrequencyTable) (*HuffmanTree, error) {
	symbols := table.Symbols()
	if len(symbols) == 0 {
		return nil, ErrEmptyInput
	}

	t := &HuffmanTree{nodes: make([]HuffmanNode, 0, 2*len(symbols)-1)}
	if len(symbols) == 1 {
		t.root = t.addLeaf(symbols[0])
		return t, nil
	}

	h := freqHeap{list: make([]nodeAndFreq, 0, len(symbols))}
	for _, symbol := range symbols {
		h.list = append(h.list, nodeAndFreq{t.addLeaf(symbol), table[symbol]})
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndFreq)
		b := heap.Pop(&h).(nodeAndFreq)
		index := t.addInternal(a.node, b.node)
		heap.Push(&h, nodeAndFreq{index, saturatingAdd(a.freq, b.freq)})
	}

	t.root = heap.Pop(&h).(nodeAndFreq).node
	return t, nil
}

// Codes derives the code table by a pre-order walk, appending "0" for a left
// edge and "1" for a right edge.  A tree that is a single leaf gets the code
// "0", so that every symbol costs at least one bit.
func (t *HuffmanTree) Codes() CodeTable {
	var codes CodeTable
	root := t.nodes[t.root]
	if root.Leaf {
		codes.set(root.Value, MakeCode(1, 0))
		return codes
	}

	type stackItem struct {
		node int32
		code Code
	}

	stack := make([]stackItem, 0, 64)
	stack = append(stack, stackItem{t.root, Code{}})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[top.node]
		if node.Leaf {
			codes.set(node.Value, top.code)
			continue
		}
		assert.Assertf(top.code.Size < MaxCodeSize, "Huffman code deeper than %d bits", MaxCodeSize)

		// push right first so that the left subtree is visited first
		stack = append(stack, stackItem{node.Right, top.code.Append(1)})
		stack = append(stack, stackItem{node.Left, top.code.Append(0)})
	}
	return codes
}

// Serialize writes the tree in pre-order: a leaf is a 1 bit followed by its
// 8-bit value, an internal node is a 0 bit followed by its left subtree and
// then its right subtree.
func (t *HuffmanTree) Serialize(bw *BitWriter) {
	stack := make([]int32, 0, 64)
	stack = append(stack, t.root)
	for len(stack) != 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[index]
		if node.Leaf {
			bw.WriteBit(1)
			bw.WriteBits(uint64(node.Value), 8)
			continue
		}
		bw.WriteBit(0)
		stack = append(stack, node.Right, node.Left)
	}
}

// DeserializeHuffmanTree reads a tree written by Serialize.  It fails with
// ErrCorruptTree if the bit stream ends before the tree is complete, if the
// tree has more than 256 leaves, or if a byte value appears on two leaves.
func DeserializeHuffmanTree(br *BitReader) (*HuffmanTree, error) {
	t := &HuffmanTree{}
	var seen [maxTreeLeaves]bool

	// Each internal node is completed bottom-up: pending holds the nodes
	// whose children are still being read, along with how many of them
	// are already known.
	type pendingItem struct {
		children [2]int32
		have     int
	}
	pending := make([]pendingItem, 0, 64)

	for {
		if br.Overrun() != 0 {
			return nil, corruptTreef("tree truncated after %d nodes", len(t.nodes))
		}

		var index int32
		if br.ReadBit() == 0 {
			if len(t.nodes)+len(pending) >= 2*maxTreeLeaves-1 {
				return nil, corruptTreef("tree has too many nodes")
			}
			pending = append(pending, pendingItem{})
			continue
		}

		value := byte(br.ReadBits(8))
		if br.Overrun() != 0 {
			return nil, corruptTreef("tree truncated after %d nodes", len(t.nodes))
		}
		if seen[value] {
			return nil, corruptTreef("byte value 0x%02x appears on two leaves", value)
		}
		seen[value] = true
		index = t.addLeaf(value)

		// Attach the finished subtree to its parent, completing
		// ancestors as their second child arrives.
		for {
			if len(pending) == 0 {
				t.root = index
				return t, nil
			}
			top := &pending[len(pending)-1]
			top.children[top.have] = index
			top.have++
			if top.have < 2 {
				break
			}
			index = t.addInternal(top.children[0], top.children[1])
			pending = pending[:len(pending)-1]
		}
	}
}

// CodeTable maps byte values to their Huffman codes.
type CodeTable struct {
	codes   [256]Code
	present [256]bool
}

func (ct *CodeTable) set(value byte, hc Code) {
	ct.codes[value] = hc
	ct.present[value] = true
}

// Lookup returns the code for value, and whether value has a code at all.
func (ct *CodeTable) Lookup(value byte) (Code, bool) {
	return ct.codes[value], ct.present[value]
}

// Len returns the number of symbols with a code.
func (ct *CodeTable) Len() int {
	var n int
	for _, ok := range ct.present {
		if ok {
			n++
		}
	}
	return n
}

// Dump writes a programmer-readable debugging dump of the code table to the
// given writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	for value := 0; value < 256; value++ {
		if ct.present[value] {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", value, ct.codes[value])
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type nodeAndFreq + type freqHeap {{{

type nodeAndFreq struct {
	node int32
	freq uint64
}

type freqHeap struct {
	list []nodeAndFreq
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

// Less orders by frequency, then by node index.  Node indices follow
// creation order, which makes the merge order fully deterministic.
func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.node < b.node
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndFreq))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}

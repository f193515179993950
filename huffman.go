package squeeze

import (
	"bytes"
)

// HuffmanCodec implements Codec with a static Huffman code whose tree is
// stored in the container.
//
// Container layout:
//
//     isBinary      uint8 (0 or 1, informational)
//     originalSize  uint32
//     tree          pre-order bit stream, zero-padded to a byte boundary
//     payload       concatenated codes, zero-padded to a byte boundary
//     trailingBits  uint8, meaningful bits in the last payload byte (0 = all 8)
//
// For an empty input the tree and payload are omitted.
//
type HuffmanCodec struct {
	events notifier
}

// NewHuffman returns a Huffman codec.
func NewHuffman(opts ...Option) *HuffmanCodec {
	cfg := buildConfig(opts)
	return &HuffmanCodec{events: notifier{alg: Huffman, listeners: cfg.Listeners}}
}

// Algorithm returns Huffman.
func (c *HuffmanCodec) Algorithm() Algorithm {
	return Huffman
}

// Encode compresses src.  Only hdr.Binary is recorded; Huffman containers
// carry no extension.
func (c *HuffmanCodec) Encode(src []byte, hdr Header) ([]byte, error) {
	if err := checkInputSize(src); err != nil {
		return nil, err
	}
	c.events.notify(EventCompressionStart, int64(len(src)), "")

	var cw containerWriter
	cw.putBool(hdr.Binary)
	cw.putUint32(uint32(len(src)))

	if len(src) == 0 {
		cw.putUint8(0)
		out := cw.Bytes()
		c.events.notify(EventCompressionEnd, int64(len(out)), "")
		return out, nil
	}

	tree, err := BuildHuffmanTree(BuildFrequencyTable(src))
	if err != nil {
		return nil, err
	}
	codes := tree.Codes()

	bw := cw.bitWriter()
	tree.Serialize(bw)
	if err := bw.Flush(); err != nil {
		return nil, err
	}

	bw = cw.bitWriter()
	for _, b := range src {
		hc, _ := codes.Lookup(b)
		bw.WriteCode(hc)
	}
	trailing := bw.Pending()
	if err := bw.Flush(); err != nil {
		return nil, err
	}
	cw.putUint8(uint8(trailing))

	out := cw.Bytes()
	c.events.notify(EventCompressionEnd, int64(len(out)), "")
	return out, nil
}

// Decode reverses Encode.
func (c *HuffmanCodec) Decode(src []byte) ([]byte, Header, error) {
	c.events.notify(EventDecompressionStart, int64(len(src)), "")

	var hdr Header
	cr := newContainerReader(src)
	binary, err := cr.getBool("binary flag")
	if err != nil {
		return nil, hdr, err
	}
	hdr.Binary = binary
	size, err := cr.getUint32("original size")
	if err != nil {
		return nil, hdr, err
	}
	if size == 0 {
		c.events.notify(EventDecompressionEnd, 0, "")
		return []byte{}, hdr, nil
	}

	body := cr.rest()
	if len(body) < 1 {
		return nil, hdr, invalidContainerf("missing trailing bit count")
	}
	trailing := uint64(body[len(body)-1])
	if trailing > 7 {
		return nil, hdr, invalidContainerf("trailing bit count %d out of range", trailing)
	}
	body = body[:len(body)-1]

	br := NewBitReader(bytes.NewReader(body))
	tree, err := DeserializeHuffmanTree(br)
	if err != nil {
		return nil, hdr, err
	}

	treeBytes := (br.BitsRead() + 7) / 8
	payload := body[treeBytes:]
	payloadBits := uint64(len(payload)) * 8
	if trailing != 0 {
		if len(payload) == 0 {
			return nil, hdr, invalidContainerf("trailing bit count %d with an empty payload", trailing)
		}
		payloadBits -= 8 - trailing
	}

	// Every symbol costs at least one bit, a lone leaf included.
	if uint64(size) > payloadBits {
		return nil, hdr, invalidContainerf("original size %d exceeds the %d payload bits", size, payloadBits)
	}

	out := make([]byte, 0, size)
	if root := tree.Node(tree.Root()); root.Leaf {
		for i := uint32(0); i < size; i++ {
			out = append(out, root.Value)
		}
		c.events.notify(EventDecompressionEnd, int64(len(out)), "")
		return out, hdr, nil
	}

	br = NewBitReader(bytes.NewReader(payload))
	cur := tree.Root()
	for uint32(len(out)) < size {
		if br.BitsRead() >= payloadBits {
			return nil, hdr, corruptStreamf("payload ended after %d of %d bytes", len(out), size)
		}
		node := tree.Node(cur)
		next := node.Left
		if br.ReadBit() == 1 {
			next = node.Right
		}
		if next == noChild {
			return nil, hdr, corruptTreef("traversal stepped past leaf 0x%02x", node.Value)
		}
		cur = next
		if leaf := tree.Node(cur); leaf.Leaf {
			out = append(out, leaf.Value)
			cur = tree.Root()
		}
	}

	c.events.notify(EventDecompressionEnd, int64(len(out)), "")
	return out, hdr, nil
}

var _ Codec = (*HuffmanCodec)(nil)

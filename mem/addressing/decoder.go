package addressing

// A Decoder maps addresses to tag and set index. The bit layout of an
// address is [ tag | set | offset ], from the most significant bit down.
type Decoder struct {
	setBits   uint
	blockBits uint
	setMask   uint64
}

// NewDecoder creates a decoder for the given geometry. The geometry is
// expected to be validated already.
func NewDecoder(g Geometry) Decoder {
	return Decoder{
		setBits:   uint(g.SetBits),
		blockBits: uint(g.BlockBits),
		setMask:   uint64(g.NumSets()) - 1,
	}
}

// Decode returns the tag and the set index of the address. The block offset
// is dropped.
func (d Decoder) Decode(addr uint64) (tag, setIndex uint64) {
	setIndex = (addr >> d.blockBits) & d.setMask
	tag = addr >> (d.setBits + d.blockBits)

	return tag, setIndex
}

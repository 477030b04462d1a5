package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/sievego/blobstore"
	"github.com/hupe1980/sievego/codec"
	"github.com/hupe1980/sievego/lattice"
	"github.com/klauspost/crc32"
)

const (
	magic   = "SVSN"
	version = 1

	// maxHeaderSize bounds the header allocation when decoding.
	maxHeaderSize = 1 << 20
)

// Kinds of snapshot content.
const (
	KindVectors = "vectors"
	KindBasis   = "basis"
)

var (
	// ErrBadMagic is returned for data that is not a snapshot.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrUnknownCodec is returned when the header codec is not built in.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
	// ErrChecksum is returned when the block does not match its checksum.
	ErrChecksum = errors.New("snapshot: checksum mismatch")
	// ErrKind is returned when a snapshot holds a different kind than requested.
	ErrKind = errors.New("snapshot: unexpected kind")
	// ErrCorrupt is returned for truncated or inconsistent snapshots.
	ErrCorrupt = errors.New("snapshot: corrupt")
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Header describes the snapshot content.
type Header struct {
	Kind     string            `json:"kind"`
	Dim      int               `json:"dim"`
	Count    int               `json:"count"`
	Params   *lattice.Params   `json:"params,omitempty"`
	Meta     map[string]string `json:"meta,omitempty"`
	Checksum uint32            `json:"checksum"`
}

// Options configures encoding.
type Options struct {
	// Compression defaults to CompressionZstd.
	Compression Compression
	// Codec encodes the header. Defaults to codec.Default.
	Codec codec.Codec
	// Meta is stored in the header verbatim.
	Meta map[string]string
}

func newOptions(optFns []func(*Options)) Options {
	opts := Options{Compression: CompressionZstd, Codec: codec.Default}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	return opts
}

// EncodeVectors writes vecs to w. All vectors must have the same dimension.
func EncodeVectors(w io.Writer, vecs []lattice.Vector, optFns ...func(*Options)) error {
	dim := 0
	if len(vecs) > 0 {
		dim = vecs[0].Dim()
	}
	raw := make([]byte, 0, len(vecs)*dim*8)
	for i, v := range vecs {
		if v.Dim() != dim {
			return fmt.Errorf("snapshot: vector %d has dimension %d, want %d", i, v.Dim(), dim)
		}
		for _, x := range v {
			raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(x))
		}
	}
	return encode(w, Header{Kind: KindVectors, Dim: dim, Count: len(vecs)}, raw, newOptions(optFns))
}

// DecodeVectors reads a vector set written by EncodeVectors.
func DecodeVectors(r io.Reader) ([]lattice.Vector, Header, error) {
	h, raw, err := decode(r, KindVectors)
	if err != nil {
		return nil, h, err
	}
	if h.Dim < 0 || h.Count < 0 || len(raw) != h.Dim*h.Count*8 {
		return nil, h, fmt.Errorf("%w: %d bytes for %d vectors of dimension %d", ErrCorrupt, len(raw), h.Count, h.Dim)
	}

	vecs := make([]lattice.Vector, h.Count)
	off := 0
	for i := range vecs {
		v := make(lattice.Vector, h.Dim)
		for j := range v {
			v[j] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off:]))
			off += 8
		}
		vecs[i] = v
	}
	return vecs, h, nil
}

// EncodeBasis writes the rows of b to w.
func EncodeBasis(w io.Writer, b *lattice.Basis, optFns ...func(*Options)) error {
	d := b.Dim()
	raw := make([]byte, 0, d*d*8)
	for _, row := range b.Rows() {
		for _, x := range row {
			raw = binary.LittleEndian.AppendUint64(raw, uint64(x))
		}
	}
	p := b.Params()
	return encode(w, Header{Kind: KindBasis, Dim: d, Count: d, Params: &p}, raw, newOptions(optFns))
}

// DecodeBasis reads a basis written by EncodeBasis and validates its form.
func DecodeBasis(r io.Reader) (*lattice.Basis, Header, error) {
	h, raw, err := decode(r, KindBasis)
	if err != nil {
		return nil, h, err
	}
	if h.Dim <= 0 || h.Count != h.Dim || len(raw) != h.Dim*h.Dim*8 {
		return nil, h, fmt.Errorf("%w: %d bytes for a %dx%d basis", ErrCorrupt, len(raw), h.Count, h.Dim)
	}

	rows := make([][]int64, h.Dim)
	off := 0
	for i := range rows {
		rows[i] = make([]int64, h.Dim)
		for j := range rows[i] {
			rows[i][j] = int64(binary.LittleEndian.Uint64(raw[off:]))
			off += 8
		}
	}
	b, err := lattice.NewBasis(rows)
	if err != nil {
		return nil, h, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return b, h, nil
}

// SaveVectors encodes vecs and puts them into store under name.
func SaveVectors(ctx context.Context, store blobstore.Store, name string, vecs []lattice.Vector, optFns ...func(*Options)) error {
	var buf bytes.Buffer
	if err := EncodeVectors(&buf, vecs, optFns...); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

// LoadVectors gets name from store and decodes it.
func LoadVectors(ctx context.Context, store blobstore.Store, name string) ([]lattice.Vector, Header, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, Header{}, err
	}
	return DecodeVectors(bytes.NewReader(data))
}

// SaveBasis encodes b and puts it into store under name.
func SaveBasis(ctx context.Context, store blobstore.Store, name string, b *lattice.Basis, optFns ...func(*Options)) error {
	var buf bytes.Buffer
	if err := EncodeBasis(&buf, b, optFns...); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

// LoadBasis gets name from store and decodes it.
func LoadBasis(ctx context.Context, store blobstore.Store, name string) (*lattice.Basis, Header, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, Header{}, err
	}
	return DecodeBasis(bytes.NewReader(data))
}

func encode(w io.Writer, h Header, raw []byte, opts Options) error {
	h.Meta = opts.Meta
	h.Checksum = crc32.Checksum(raw, castagnoli)

	hb, err := opts.Codec.Marshal(h)
	if err != nil {
		return fmt.Errorf("snapshot: encode header: %w", err)
	}
	block, err := compressBlock(raw, opts.Compression)
	if err != nil {
		return fmt.Errorf("snapshot: compress: %w", err)
	}

	name := opts.Codec.Name()
	out := make([]byte, 0, len(magic)+3+len(name)+4+len(hb)+len(block))
	out = append(out, magic...)
	out = append(out, version, byte(opts.Compression), byte(len(name)))
	out = append(out, name...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(hb)))
	out = append(out, hb...)
	out = append(out, block...)

	_, err = w.Write(out)
	return err
}

func decode(r io.Reader, kind string) (Header, []byte, error) {
	var h Header

	pre := make([]byte, len(magic)+3)
	if _, err := io.ReadFull(r, pre); err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if string(pre[:len(magic)]) != magic {
		return h, nil, ErrBadMagic
	}
	if pre[4] != version {
		return h, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, pre[4])
	}
	comp := Compression(pre[5])

	name := make([]byte, pre[6])
	if _, err := io.ReadFull(r, name); err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return h, nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	var hlen uint32
	if err := binary.Read(r, binary.LittleEndian, &hlen); err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if hlen > maxHeaderSize {
		return h, nil, fmt.Errorf("%w: header of %d bytes", ErrCorrupt, hlen)
	}
	hb := make([]byte, hlen)
	if _, err := io.ReadFull(r, hb); err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := c.Unmarshal(hb, &h); err != nil {
		return h, nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if h.Kind != kind {
		return h, nil, fmt.Errorf("%w: %q, want %q", ErrKind, h.Kind, kind)
	}

	block, err := io.ReadAll(r)
	if err != nil {
		return h, nil, err
	}
	raw, err := decompressBlock(block, comp)
	if err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if crc32.Checksum(raw, castagnoli) != h.Checksum {
		return h, nil, ErrChecksum
	}
	return h, raw, nil
}

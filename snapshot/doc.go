// Package snapshot stores vector sets and lattice bases as compressed,
// self-describing binary blobs.
//
// # Format
//
//	magic   [4]byte "SVSN"
//	version uint8
//	compr   uint8 Compression
//	codec   uint8 length + codec name
//	header  uint32 length + codec-encoded Header
//	block   uint32 raw size, uint32 stored size (0 = stored raw), data
//
// The block holds little-endian float64 coordinates for vector sets and
// int64 entries for bases. The header carries a CRC-32C of the raw block.
package snapshot

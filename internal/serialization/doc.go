// Package serialization implements the .born named-tensor container used for
// GAN weight files.
//
//	Format v2:
//	  [0x00: Magic "BORN"]
//	  [0x04: Version (uint32 LE)]
//	  [0x08: Flags (uint32 LE)]
//	  [0x0C: Reserved]
//	  [0x10: Header size (uint64 LE)]
//	  [0x18: Data size (uint64 LE)]
//	  [0x20: SHA-256 of the data section]
//	  [0x40: Header: JSON]
//	  [Tensor data: little-endian float32, 64-byte aligned]
//
// Version 1 files (no fixed header, no checksum) are still readable.
//
// Tensors are written in the order given, so a file produced from the same
// parameters is byte-identical apart from its creation time.
//
//	err := serialization.Write(w, []serialization.NamedTensor{{Name: "g-0", Raw: w0}},
//	    "GANLab", map[string]string{"iter_count": "42"})
//
//	f, err := serialization.Read(r, serialization.ReaderOptions{})
//	w0, err := f.Tensor("g-0")
package serialization

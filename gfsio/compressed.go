package gfsio

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	"github.com/fuscadan/gfs/gfserr"
	"github.com/fuscadan/gfs/internal/block"
)

// ExportLeavesCompressed writes leaves as zstd-compressed leaf-list JSON to
// path, alongside a path+".b2sum" file holding the hex blake2b-256 digest of
// the uncompressed JSON. Used for posterior files, which can grow into the
// tens of megabytes once a leaf list has been fully combined.
func ExportLeavesCompressed(leaves block.LeafList, path string) error {
	data, err := EncodeLeaves(leaves)
	if err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	if err := makeDir(path); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}

	digest := blake2b.Sum256(data)
	if err := os.WriteFile(path+".b2sum", []byte(hex.EncodeToString(digest[:])+"\n"), 0o644); err != nil {
		return &gfserr.IOError{Path: path + ".b2sum", Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return &gfserr.IOError{Path: path, Err: err}
	}
	if err := copyCloseBytes(enc, data); err != nil {
		f.Close()
		return &gfserr.IOError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	return nil
}

// LoadLeavesCompressed reads and decodes a zstd-compressed leaf-list file
// written by ExportLeavesCompressed, verifying it against the adjacent
// ".b2sum" digest when present.
func LoadLeavesCompressed(path string) (block.LeafList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &gfserr.IOError{Path: path, Err: err}
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, &gfserr.IOError{Path: path, Err: err}
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, &gfserr.IOError{Path: path, Err: err}
	}

	if want, err := os.ReadFile(path + ".b2sum"); err == nil {
		got := blake2b.Sum256(data)
		if hex.EncodeToString(got[:])+"\n" != string(want) {
			return nil, &gfserr.IOError{Path: path, Err: errDigestMismatch{}}
		}
	}

	return DecodeLeaves(data)
}

type errDigestMismatch struct{}

func (errDigestMismatch) Error() string { return "blake2b digest does not match stored .b2sum" }

// copyCloseBytes writes data to w and always closes it, even on error.
func copyCloseBytes(w io.WriteCloser, data []byte) error {
	_, err := w.Write(data)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

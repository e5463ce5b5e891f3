package doublons

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// DefaultBlockSize is the number of bytes compared per read.
const DefaultBlockSize = 4096

// Comparator decides whether two files are duplicates.
type Comparator interface {
	// BytesEqual reports whether the two files have identical content.
	BytesEqual(a, b string) (bool, error)
	// PermissionsEqual reports whether the two files have identical permission bits.
	PermissionsEqual(a, b string) (bool, error)
}

// FileComparator compares files on disk.
type FileComparator struct {
	// BlockSize is the read size for content comparison (0 = DefaultBlockSize).
	BlockSize int
}

// BytesEqual reports whether a and b have the same size and the same bytes.
//
// Sizes differing short-circuits without reading. Otherwise both files are
// read in lockstep full blocks; a block of different length means one file
// ended early and the files are not equal.
func (fc FileComparator) BytesEqual(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, &Error{Kind: KindIO, Op: "opening", Path: a, Err: err}
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, &Error{Kind: KindIO, Op: "opening", Path: b, Err: err}
	}
	defer fb.Close()

	infoA, err := fa.Stat()
	if err != nil {
		return false, &Error{Kind: KindIO, Op: "stat", Path: a, Err: err}
	}

	infoB, err := fb.Stat()
	if err != nil {
		return false, &Error{Kind: KindIO, Op: "stat", Path: b, Err: err}
	}

	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	equal, err := readersEqual(fa, fb, fc.blockSize())
	if err != nil {
		return false, &Error{Kind: KindIO, Op: "comparing", Path: a + " and " + b, Err: err}
	}

	return equal, nil
}

// PermissionsEqual reports whether a and b share the 9 low permission bits.
// Type, setuid, setgid and sticky bits are ignored.
func (FileComparator) PermissionsEqual(a, b string) (bool, error) {
	infoA, err := os.Lstat(a)
	if err != nil {
		return false, &Error{Kind: KindStat, Op: "stat", Path: a, Err: err}
	}

	infoB, err := os.Lstat(b)
	if err != nil {
		return false, &Error{Kind: KindStat, Op: "stat", Path: b, Err: err}
	}

	return infoA.Mode().Perm() == infoB.Mode().Perm(), nil
}

func (fc FileComparator) blockSize() int {
	if fc.BlockSize <= 0 {
		return DefaultBlockSize
	}

	return fc.BlockSize
}

// readersEqual compares two streams block by block until both end.
func readersEqual(ra, rb io.Reader, blockSize int) (bool, error) {
	bufA := make([]byte, blockSize)
	bufB := make([]byte, blockSize)

	for {
		na, errA := io.ReadFull(ra, bufA)
		if errA != nil && !isEOF(errA) {
			return false, errA
		}

		nb, errB := io.ReadFull(rb, bufB)
		if errB != nil && !isEOF(errB) {
			return false, errB
		}

		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}

		// Equal lengths short of a full block: both streams ended together.
		if na < blockSize {
			return true, nil
		}
	}
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// checksumChunkSize is the read granularity for hashing; files are
// never loaded whole.
const checksumChunkSize = 4096

// checksumFile streams the file through sha256 and returns the hex
// digest. Every extraction hashes the full content: no filesystem
// attribute reliably detects a same-length rewrite, so the digest is
// never cached.
func checksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, checksumChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

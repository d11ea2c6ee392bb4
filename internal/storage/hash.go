package storage

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
)

// HashAlgorithm selects the file digest algorithm.
type HashAlgorithm string

const (
	// MD5 is the default, matching the 128-bit digests the storage
	// format has always produced.
	MD5 HashAlgorithm = "md5"
	// SHA256 is available for callers who need collision resistance.
	SHA256 HashAlgorithm = "sha256"
)

// hashChunkSize is the read size for streaming digests.
const hashChunkSize = 4096

// Hasher computes streaming content digests.
type Hasher struct {
	algorithm HashAlgorithm
}

// NewHasher creates a hasher with the specified algorithm.
// Unknown algorithms fall back to MD5.
func NewHasher(algorithm HashAlgorithm) *Hasher {
	switch algorithm {
	case MD5, SHA256:
	default:
		algorithm = MD5
	}
	return &Hasher{algorithm: algorithm}
}

func (h *Hasher) newDigest() hash.Hash {
	if h.algorithm == SHA256 {
		return sha256.New()
	}
	return md5.New()
}

// File digests a file in fixed-size chunks and returns the lowercase
// hex digest string.
func (h *Hasher) File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	digest := h.newDigest()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			digest.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

// Sum digests an in-memory payload.
func (h *Hasher) Sum(data []byte) string {
	digest := h.newDigest()
	digest.Write(data)
	return hex.EncodeToString(digest.Sum(nil))
}

// Hash returns the content digest of rel using the configured
// algorithm.
func (m *Manager) Hash(rel string) (string, error) {
	path, err := m.resolve(rel)
	if err != nil {
		return "", m.failKind("hash", rel, KindInvalid, err)
	}

	sum, err := m.hasher.File(path)
	if err != nil {
		return "", m.fail("hash", rel, err)
	}
	return sum, nil
}

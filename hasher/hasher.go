package hasher

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

var ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

const DefaultChunkSize = 4096

var constructors = map[string]func() hash.Hash{
	"md5":         md5.New,
	"sha1":        sha1.New,
	"sha224":      sha256.New224,
	"sha256":      sha256.New,
	"sha384":      sha512.New384,
	"sha512":      sha512.New,
	"sha3-256":    sha3.New256,
	"sha3-512":    sha3.New512,
	"blake2b-256": func() hash.Hash { h, _ := blake2b.New256(nil); return h },
	"blake2b-512": func() hash.Hash { h, _ := blake2b.New512(nil); return h },
	"crc32":       func() hash.Hash { return crc32.NewIEEE() },
}

// Algorithms returns the supported algorithm names, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func IsSupported(algorithm string) bool {
	_, ok := constructors[algorithm]
	return ok
}

// Engine streams files through named hash algorithms.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Sum reads the file at path in chunkSize blocks and returns the lowercase
// hex digest under the named algorithm.
func (e *Engine) Sum(path, algorithm string, chunkSize int) (string, error) {
	newHash, ok := constructors[algorithm]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, algorithm)
	}

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	file, err := os.Open(path)
	if err != nil {
		e.logger.Debug("Failed to open file for hashing",
			zap.String("path", path),
			zap.Error(err),
		)
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	h := newHash()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, file, buf); err != nil {
		e.logger.Debug("Failed to read file for hashing",
			zap.String("path", path),
			zap.Error(err),
		)
		return "", fmt.Errorf("read file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

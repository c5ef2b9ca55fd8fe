// Package bytecode loads contract bytecode from files or standard input and
// computes code hashes.
package bytecode

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/sha3"

	"xdao.co/solcmeta/metadata"
)

// ErrEmptyInput is returned when hex input contains no digits.
var ErrEmptyInput = errors.New("bytecode: empty input")

// DecodeHex decodes textual bytecode. Surrounding whitespace and a leading
// 0x/0X prefix are optional.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if s == "" {
		return nil, ErrEmptyInput
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("bytecode: invalid hex: %w", err)
	}
	return b, nil
}

// ReadFile reads bytecode from path. With raw set the file contents are the
// bytecode; otherwise the whole file is hex text.
func ReadFile(path string, raw bool) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if raw {
		return b, nil
	}
	return DecodeHex(string(b))
}

// ReadStream reads bytecode from r. With raw set everything up to EOF is the
// bytecode; otherwise only the first line is read and decoded as hex.
func ReadStream(r io.Reader, raw bool) ([]byte, error) {
	if raw {
		return io.ReadAll(r)
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return DecodeHex(line)
}

// Hash is a Keccak-256 digest.
type Hash [32]byte

// Hex returns the 0x-prefixed hex encoding of h.
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) String() string { return h.Hex() }

// CodeHash returns the Keccak-256 hash of code, as used for EVM code hashes.
func CodeHash(code []byte) Hash {
	var h Hash
	d := sha3.NewLegacyKeccak256()
	_, _ = d.Write(code)
	d.Sum(h[:0])
	return h
}

// StrippedCodeHash hashes code with the metadata trailer and its length
// field removed. Two builds of the same source that differ only in metadata
// produce the same stripped hash.
func StrippedCodeHash(code []byte) (Hash, error) {
	body, _, err := metadata.Split(code)
	if err != nil {
		return Hash{}, err
	}
	return CodeHash(body), nil
}

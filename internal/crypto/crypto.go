// Package crypto implements the field-level encryption used for PII at rest
// and the one-way digests used for lookups and passwords.
//
// Email addresses are stored twice: as reversible AES-256-CBC ciphertext (for
// display) and as a SHA-256 digest (for equality lookups). The cipher uses a
// fixed IV on purpose — identical plaintexts must produce identical
// ciphertexts so the hash column stays consistent with the encrypted column.
// This sacrifices ciphertext indistinguishability for queryability; do not
// switch to random IVs without replacing the lookup mechanism.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrDecryption is returned for any input that was not produced by Encrypt
// with the same key material. Callers must treat it as a hard failure —
// Decrypt never returns garbage silently.
var ErrDecryption = errors.New("crypto: no se pudo descifrar el valor")

// BcryptCost matches the cost factor used since the first deployment. Changing
// it only affects newly hashed passwords; existing hashes keep their cost.
const BcryptCost = 10

// Cipher holds the symmetric key material. Construct one per process from
// configuration and inject it; there are no package-level keys.
type Cipher struct {
	key []byte
	iv  []byte
}

// NewCipher expects a hex-encoded 32-byte key and 16-byte IV.
func NewCipher(hexKey, hexIV string) (*Cipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != 32 {
		return nil, errors.New("crypto: key must be 64 hex characters")
	}
	iv, err := hex.DecodeString(hexIV)
	if err != nil || len(iv) != aes.BlockSize {
		return nil, errors.New("crypto: iv must be 32 hex characters")
	}
	return &Cipher{key: key, iv: iv}, nil
}

// Encrypt returns the hex-encoded AES-256-CBC ciphertext of plaintext.
// Deterministic: the same plaintext always yields the same ciphertext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, c.iv).CryptBlocks(out, padded)
	return hex.EncodeToString(out), nil
}

// Decrypt is the inverse of Encrypt. Malformed hex, wrong length, or invalid
// padding all yield ErrDecryption.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil || len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", ErrDecryption
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, c.iv).CryptBlocks(out, raw)
	unpadded, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", ErrDecryption
	}
	return string(unpadded), nil
}

// Hash returns the hex SHA-256 digest of text. Deterministic and fast on
// purpose — it backs indexed equality lookups on encrypted columns and is
// never used for passwords.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// HashPassword applies the slow salted hash used exclusively for credentials.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt hash.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding byte")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("inconsistent padding")
		}
	}
	return data[:len(data)-n], nil
}

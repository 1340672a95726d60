// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Hash parameters. The stored format is compatible with existing
// "pbkdf2:sha256:<iterations>$<salt>$<hexdigest>" hashes, so accounts
// migrated from the previous deployment keep working.
const (
	pbkdf2Iterations = 600000
	saltLength       = 10
	keyLength        = sha256.Size
	hashMethod       = "pbkdf2:sha256"
)

// saltAlphabet matches the character set of legacy salts.
const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePasswordHash derives a salted PBKDF2-SHA256 hash for storage.
func GeneratePasswordHash(password string) (string, error) {
	salt, err := generateSalt(saltLength)
	if err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, keyLength, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s", hashMethod, pbkdf2Iterations, salt, hex.EncodeToString(digest)), nil
}

// CheckPasswordHash verifies a password against a stored hash in constant
// time. Malformed hashes verify as false.
func CheckPasswordHash(storedHash, password string) bool {
	method, iterations, salt, digest, err := parseHash(storedHash)
	if err != nil || method != hashMethod {
		return false
	}

	computed := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(digest), sha256.New)
	return subtle.ConstantTimeCompare(computed, digest) == 1
}

func parseHash(stored string) (method string, iterations int, salt string, digest []byte, err error) {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return "", 0, "", nil, fmt.Errorf("malformed password hash")
	}

	methodPart := parts[0]
	idx := strings.LastIndex(methodPart, ":")
	if idx < 0 {
		return "", 0, "", nil, fmt.Errorf("malformed password hash method")
	}
	method = methodPart[:idx]

	iterations, err = strconv.Atoi(methodPart[idx+1:])
	if err != nil || iterations <= 0 {
		return "", 0, "", nil, fmt.Errorf("malformed iteration count")
	}

	digest, err = hex.DecodeString(parts[2])
	if err != nil || len(digest) == 0 {
		return "", 0, "", nil, fmt.Errorf("malformed digest")
	}

	return method, iterations, parts[1], digest, nil
}

func generateSalt(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	for i := range bytes {
		bytes[i] = saltAlphabet[int(bytes[i])%len(saltAlphabet)]
	}
	return string(bytes), nil
}

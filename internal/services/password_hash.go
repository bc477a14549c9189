package services

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

var ErrUnsupportedPasswordHash = errors.New("unsupported password hash")

const (
	werkzeugDefaultPBKDF2Iterations = 260000
	werkzeugScryptKeyLength         = 64
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPasswordHash checks a password against a bcrypt hash or an imported werkzeug hash.
// needsRehash is true when the password matched a non-bcrypt hash.
func VerifyPasswordHash(storedHash string, password string) (matched bool, needsRehash bool, err error) {
	storedHash = strings.TrimSpace(storedHash)
	switch {
	case strings.HasPrefix(storedHash, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil, false, nil
	case strings.HasPrefix(storedHash, "pbkdf2:"), strings.HasPrefix(storedHash, "scrypt:"):
		matched, err := verifyWerkzeugHash(storedHash, password)
		if err != nil {
			return false, false, err
		}
		return matched, matched, nil
	default:
		return false, false, ErrUnsupportedPasswordHash
	}
}

// verifyWerkzeugHash handles "method$salt$hexdigest" where method is
// pbkdf2:<alg>[:<iterations>] or scrypt[:n:r:p].
func verifyWerkzeugHash(storedHash string, password string) (bool, error) {
	parts := strings.SplitN(storedHash, "$", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return false, ErrUnsupportedPasswordHash
	}
	method, salt, expected := parts[0], parts[1], strings.ToLower(parts[2])

	derived, err := deriveWerkzeugKey(method, []byte(password), []byte(salt))
	if err != nil {
		return false, err
	}
	actual := hex.EncodeToString(derived)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(expected)) == 1, nil
}

func deriveWerkzeugKey(method string, password []byte, salt []byte) ([]byte, error) {
	fields := strings.Split(method, ":")
	switch fields[0] {
	case "pbkdf2":
		if len(fields) < 2 || len(fields) > 3 {
			return nil, ErrUnsupportedPasswordHash
		}
		newHash, size, err := werkzeugDigest(fields[1])
		if err != nil {
			return nil, err
		}
		iterations := werkzeugDefaultPBKDF2Iterations
		if len(fields) == 3 {
			iterations, err = parsePositiveInt(fields[2])
			if err != nil {
				return nil, err
			}
		}
		return pbkdf2.Key(password, salt, iterations, size, newHash), nil
	case "scrypt":
		n, r, p := 32768, 8, 1
		if len(fields) != 1 && len(fields) != 4 {
			return nil, ErrUnsupportedPasswordHash
		}
		if len(fields) == 4 {
			var err error
			if n, err = parsePositiveInt(fields[1]); err != nil {
				return nil, err
			}
			if r, err = parsePositiveInt(fields[2]); err != nil {
				return nil, err
			}
			if p, err = parsePositiveInt(fields[3]); err != nil {
				return nil, err
			}
		}
		return scrypt.Key(password, salt, n, r, p, werkzeugScryptKeyLength)
	default:
		return nil, ErrUnsupportedPasswordHash
	}
}

func werkzeugDigest(name string) (func() hash.Hash, int, error) {
	switch strings.ToLower(name) {
	case "sha256":
		return sha256.New, sha256.Size, nil
	case "sha512":
		return sha512.New, sha512.Size, nil
	case "sha1":
		return sha1.New, sha1.Size, nil
	default:
		return nil, 0, ErrUnsupportedPasswordHash
	}
}

func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, ErrUnsupportedPasswordHash
	}
	return value, nil
}

package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	algorithmID = "argon2id"

	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
)

// ErrMalformedHash reports a persisted hash record that is not a
// well-formed argon2id PHC string. Callers must surface it as an internal
// error, never echo the record back.
var ErrMalformedHash = errors.New("malformed password hash record")

// DefaultParams follows the OWASP argon2id recommendation: 19 MiB memory,
// time cost 2, single lane.
var DefaultParams = Params{
	Memory:      19 * 1024,
	Time:        2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Params are the argon2id cost parameters. They are embedded in every
// encoded hash, so Verify always re-derives with the parameters the hash
// was created with, not the currently configured ones.
type Params struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func (p Params) validate() error {
	if p.Memory < minMemoryKB {
		return errors.New("password memory must be >= 8192 KiB")
	}
	if p.Time < minTimeCost {
		return errors.New("password time cost must be >= 1")
	}
	if p.Parallelism < minParallelism {
		return errors.New("password parallelism must be >= 1")
	}
	if p.SaltLength < minSaltLength {
		return errors.New("password salt length must be >= 16")
	}
	if p.KeyLength < minKeyLength {
		return errors.New("password key length must be >= 16")
	}
	return nil
}

// Hasher computes and verifies salted argon2id digests in PHC string
// format: $argon2id$v=19$m=...,t=...,p=...$<salt>$<digest>.
type Hasher struct {
	params Params
}

// NewHasher validates the cost parameters and returns a Hasher.
func NewHasher(params Params) (*Hasher, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Hasher{params: params}, nil
}

// Hash derives a digest for raw under a fresh random salt and returns the
// full encoded record.
func (h *Hasher) Hash(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("cannot hash empty password")
	}

	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	digest := argon2.IDKey(
		[]byte(raw),
		salt,
		h.params.Time,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Parallelism,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(digest),
	), nil
}

// Verify re-derives raw under the parameters embedded in encoded and
// compares in constant time. A malformed record returns ErrMalformedHash;
// a clean mismatch returns (false, nil).
func (h *Hasher) Verify(raw, encoded string) (bool, error) {
	rec, err := decode(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(raw),
		rec.salt,
		rec.time,
		rec.memory,
		rec.parallelism,
		uint32(len(rec.digest)),
	)

	return subtle.ConstantTimeCompare(computed, rec.digest) == 1, nil
}

// ValidateEncoded checks that a persisted string is a well-formed argon2id
// record without re-deriving anything. Stores use it when loading
// identities so corruption is detected at read time.
func ValidateEncoded(encoded string) error {
	_, err := decode(encoded)
	return err
}

type record struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	digest      []byte
}

func decode(encoded string) (*record, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, ErrMalformedHash
	}
	if parts[1] != algorithmID {
		return nil, fmt.Errorf("%w: unsupported algorithm", ErrMalformedHash)
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, fmt.Errorf("%w: missing version", ErrMalformedHash)
	}
	if v, err := strconv.Atoi(version); err != nil || v != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version", ErrMalformedHash)
	}

	rec := &record{}
	if err := parseCosts(parts[3], rec); err != nil {
		return nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil || uint32(len(salt)) < minSaltLength {
		return nil, fmt.Errorf("%w: bad salt", ErrMalformedHash)
	}
	digest, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return nil, fmt.Errorf("%w: bad digest", ErrMalformedHash)
	}

	rec.salt = salt
	rec.digest = digest
	return rec, nil
}

func parseCosts(s string, rec *record) error {
	var seenM, seenT, seenP bool

	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%w: bad cost entry", ErrMalformedHash)
		}
		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || uint32(v) < minMemoryKB {
				return fmt.Errorf("%w: bad memory cost", ErrMalformedHash)
			}
			rec.memory = uint32(v)
			seenM = true
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || uint32(v) < minTimeCost {
				return fmt.Errorf("%w: bad time cost", ErrMalformedHash)
			}
			rec.time = uint32(v)
			seenT = true
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil || uint8(v) < minParallelism {
				return fmt.Errorf("%w: bad parallelism", ErrMalformedHash)
			}
			rec.parallelism = uint8(v)
			seenP = true
		default:
			return fmt.Errorf("%w: unknown cost parameter", ErrMalformedHash)
		}
	}

	if !seenM || !seenT || !seenP {
		return fmt.Errorf("%w: missing cost parameters", ErrMalformedHash)
	}
	return nil
}

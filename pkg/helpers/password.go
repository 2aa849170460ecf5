package helpers

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"

	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

// Argon2Params are the argon2id cost parameters applied to new hashes.
// Verification always uses the parameters stored in the hash itself.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

func DefaultArgon2Params() Argon2Params {
	return Argon2Params{Time: 2, Memory: 19 * 1024, Threads: 1, KeyLen: 32}
}

const minSaltLen = 8

var (
	errSaltTooShort = fmt.Errorf("argon salt must be at least %d bytes", minSaltLen)
	errBadHash      = errors.New("stored password hash is not a valid argon2id string")
)

// PasswordHasher runs argon2id with a configured salt on a bounded pool so that
// hashing never occupies more than `workers` CPUs at once.
type PasswordHasher struct {
	salt   []byte
	params Argon2Params
	sem    *semaphore.Weighted
}

func NewPasswordHasher(salt string, params Argon2Params, workers int) *PasswordHasher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if params.KeyLen == 0 {
		params.KeyLen = 32
	}
	return &PasswordHasher{
		salt:   []byte(salt),
		params: params,
		sem:    semaphore.NewWeighted(int64(workers)),
	}
}

// Hash returns a PHC-formatted argon2id string.
func (h *PasswordHasher) Hash(ctx context.Context, raw string) (string, error) {
	if len(h.salt) < minSaltLen {
		return "", apperror.Internal(errSaltTooShort)
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", apperror.Internal(err)
	}
	defer h.sem.Release(1)

	p := h.params
	key := argon2.IDKey([]byte(raw), h.salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return encodeArgon2(p, h.salt, key), nil
}

// Verify reports whether attempt matches encoded. A hash that cannot be decoded
// is an internal error, never a plain mismatch.
func (h *PasswordHasher) Verify(ctx context.Context, encoded, attempt string) (bool, error) {
	p, salt, want, err := decodeArgon2(encoded)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, apperror.Internal(err)
	}
	defer h.sem.Release(1)

	got := argon2.IDKey([]byte(attempt), salt, p.Time, p.Memory, p.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func encodeArgon2(p Argon2Params, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func decodeArgon2(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params
	parts := strings.Split(encoded, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, errBadHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, errBadHash
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, errBadHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, errBadHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, errBadHash
	}
	if p.Time == 0 || p.Threads == 0 {
		return p, nil, nil, errBadHash
	}
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}

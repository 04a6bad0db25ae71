// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/models"
)

// sessionCache persists the provider session in a single-row SQLite table,
// encrypted with AES-GCM under a key derived from the device secret via
// Argon2id. A fresh random salt is generated on every Save, so rewriting
// the session also rotates the derived key.
type sessionCache struct {
	*DB
	logger *logger.Logger

	deviceKey string

	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. mobile vs. desktop).
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewSessionCache constructs a [SessionCache] with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewSessionCache(db *DB, deviceKey string, logger *logger.Logger) SessionCache {
	return &sessionCache{
		DB:        db,
		logger:    logger,
		deviceKey: deviceKey,

		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

func (s *sessionCache) Save(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("generate session cache salt: %w", err)
	}

	plain, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session for cache: %w", err)
	}

	blob, err := s.seal(plain, salt)
	if err != nil {
		return fmt.Errorf("encrypt session cache: %w", err)
	}

	if _, err := s.DB.ExecContext(ctx, upsertSessionCache, salt, blob); err != nil {
		log.Err(err).
			Str("func", "sessionCache.Save").
			Msg("failed to upsert session cache row")
		return fmt.Errorf("failed to save session cache: %w", err)
	}

	return nil
}

func (s *sessionCache) Load(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	var salt, blob []byte
	err := s.DB.QueryRowContext(ctx, getSessionCache).Scan(&salt, &blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionCacheEmpty
		}
		log.Err(err).
			Str("func", "sessionCache.Load").
			Msg("failed to query session cache row")
		return models.Session{}, fmt.Errorf("failed to load session cache: %w", err)
	}

	plain, err := s.open(blob, salt)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrSessionCacheCorrupt, err)
	}

	var session models.Session
	if err := json.Unmarshal(plain, &session); err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrSessionCacheCorrupt, err)
	}

	return session, nil
}

func (s *sessionCache) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, clearSessionCache); err != nil {
		log.Err(err).
			Str("func", "sessionCache.Clear").
			Msg("failed to delete session cache row")
		return fmt.Errorf("failed to clear session cache: %w", err)
	}

	return nil
}

// seal encrypts plain with AES-GCM under the salt-derived key. The random
// nonce is prepended to the returned ciphertext.
func (s *sessionCache) seal(plain, salt []byte) ([]byte, error) {
	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plain, nil), nil
}

// open reverses seal.
func (s *sessionCache) open(blob, salt []byte) ([]byte, error) {
	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	if len(blob) < aead.NonceSize() {
		return nil, errors.New("ciphertext shorter than nonce")
	}

	nonce, ciphertext := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}

func (s *sessionCache) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(
		[]byte(s.deviceKey),
		salt,
		s.argonTime,
		s.argonMemory,
		s.argonThreads,
		s.argonKeyLen,
	)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	return cipher.NewGCM(block)
}

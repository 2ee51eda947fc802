package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fabulark/fabula/pkg/domain"
	"github.com/fabulark/fabula/pkg/ports"
)

// envelopeID is the single story ID the encrypted collection is stored under.
const envelopeID = "__encrypted__"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.StoryStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts the story
// collection with AES-GCM before it reaches the underlying store. The store
// only ever sees an opaque envelope; titles, prompts and generated texts
// never leave the process in the clear.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.StoryStore) ports.StoryStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, stories map[string]*domain.Story) error {
	plainText, err := json.Marshal(stories)
	if err != nil {
		return fmt.Errorf("failed to marshal stories: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt stories: %w", err)
	}

	// The envelope is a single well-formed story whose only node carries the
	// ciphertext, so any StoryStore can persist it unchanged.
	carrier := domain.NewStory().
		WithTitle("encrypted").
		AddNode(domain.NewInfoNode(envelopeID, domain.Info{
			Title: envelopeID,
			Text:  base64.StdEncoding.EncodeToString(ciphertext),
		}))

	return m.next.Save(ctx, map[string]*domain.Story{envelopeID: carrier})
}

func (m *encryptionMiddleware) Load(ctx context.Context) (map[string]*domain.Story, error) {
	envelope, err := m.next.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(envelope) == 0 {
		// Nothing was ever persisted.
		return map[string]*domain.Story{}, nil
	}

	carrier, ok := envelope[envelopeID]
	if !ok || len(carrier.Flow.Nodes) == 0 || carrier.Flow.Nodes[0].Info == nil {
		// The store holds plain data while encryption is configured. Fail
		// secure instead of guessing.
		return nil, errors.New("store is missing the encrypted data envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(carrier.Flow.Nodes[0].Info.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt stories: %w", err)
	}

	var stories map[string]*domain.Story
	if err := json.Unmarshal(plainText, &stories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted stories: %w", err)
	}
	if stories == nil {
		stories = map[string]*domain.Story{}
	}
	return stories, nil
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}

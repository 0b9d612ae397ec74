// Package secrets keeps generator API keys out of the plain-text config. Keys
// live in a 0600 file, sealed with AES-GCM under a per-user key. It is
// obfuscation, not an OS keychain.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const fileName = "keys.json"

var ErrNotFound = errors.New("key not found")

type keyFile struct {
	Keys map[string]string `json:"keys"` // provider -> base64(nonce|ciphertext)
}

// Keyring stores one key per generator provider.
type Keyring struct {
	path string
}

// Open returns the keyring kept in dir, creating dir if needed. An empty dir
// means the user config directory.
func Open(dir string) (*Keyring, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "floorplan")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("keyring dir: %w", err)
	}
	return &Keyring{path: filepath.Join(dir, fileName)}, nil
}

// Set stores key for provider, replacing any previous one.
func (k *Keyring) Set(provider, key string) error {
	provider = norm(provider)
	if provider == "" {
		return errors.New("provider required")
	}
	kf, err := k.load()
	if err != nil {
		return err
	}
	sealed, err := seal([]byte(strings.TrimSpace(key)))
	if err != nil {
		return err
	}
	kf.Keys[provider] = base64.StdEncoding.EncodeToString(sealed)
	return k.save(kf)
}

// Get returns the key stored for provider, or ErrNotFound.
func (k *Keyring) Get(provider string) (string, error) {
	kf, err := k.load()
	if err != nil {
		return "", err
	}
	enc, ok := kf.Keys[norm(provider)]
	if !ok {
		return "", ErrNotFound
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("decode key: %w", err)
	}
	plain, err := unseal(raw)
	if err != nil {
		return "", fmt.Errorf("unseal key: %w", err)
	}
	return string(plain), nil
}

// Delete removes the key for provider. Missing keys are not an error.
func (k *Keyring) Delete(provider string) error {
	kf, err := k.load()
	if err != nil {
		return err
	}
	delete(kf.Keys, norm(provider))
	return k.save(kf)
}

func (k *Keyring) load() (keyFile, error) {
	kf := keyFile{Keys: map[string]string{}}
	data, err := os.ReadFile(k.path)
	if errors.Is(err, os.ErrNotExist) {
		return kf, nil
	}
	if err != nil {
		return kf, err
	}
	if err := json.Unmarshal(data, &kf); err != nil {
		return kf, fmt.Errorf("parse %s: %w", k.path, err)
	}
	if kf.Keys == nil {
		kf.Keys = map[string]string{}
	}
	return kf, nil
}

// save replaces the keyring file via a temp file.
func (k *Keyring) save(kf keyFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return err
	}
	tmp := k.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, k.path)
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func aead() (cipher.AEAD, error) {
	sum := sha256.Sum256([]byte(fmt.Sprintf("floorplan-%s-%s", runtime.GOOS, os.Getenv("USER"))))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func seal(plain []byte) ([]byte, error) {
	gcm, err := aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func unseal(data []byte) ([]byte, error) {
	gcm, err := aead()
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	return gcm.Open(nil, data[:gcm.NonceSize()], data[gcm.NonceSize():], nil)
}

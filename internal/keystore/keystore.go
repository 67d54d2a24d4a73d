// Package keystore stores provider credentials in the OS keyring.
package keystore

import (
	"errors"
	"fmt"
	"strings"

	"mavi/internal/models"

	"github.com/zalando/go-keyring"
)

const service = "mavi-companion"

var (
	// ErrNotFound indicates no credential is stored for the model.
	ErrNotFound = errors.New("no API key stored")
	// ErrUnavailable indicates the OS credential store cannot be reached.
	ErrUnavailable = errors.New("credential store unavailable")
)

// Entry reports credential presence for one supported model.
type Entry struct {
	Model   models.Key
	Present bool
}

// Store is the narrow credential interface consumed by the CLI.
type Store interface {
	Set(model models.Key, secret string) error
	Get(model models.Key) (string, error)
	Delete(model models.Key) error
	Status() ([]Entry, error)
}

// New returns a Store backed by the system keyring.
func New() Store {
	return keyringStore{}
}

type keyringStore struct{}

func (keyringStore) Set(model models.Key, secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return fmt.Errorf("API key for %s is empty", model)
	}
	if err := keyring.Set(service, string(model), secret); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (keyringStore) Get(model models.Key) (string, error) {
	secret, err := keyring.Get(service, string(model))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w for %s", ErrNotFound, model)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return secret, nil
}

func (keyringStore) Delete(model models.Key) error {
	err := keyring.Delete(service, string(model))
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w for %s", ErrNotFound, model)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Status lists presence per supported model in enumeration order.
// A store lookup failure other than not-found aborts the listing.
func (s keyringStore) Status() ([]Entry, error) {
	entries := make([]Entry, 0, len(models.Supported()))
	for _, model := range models.Supported() {
		_, err := s.Get(model)
		switch {
		case err == nil:
			entries = append(entries, Entry{Model: model, Present: true})
		case errors.Is(err, ErrNotFound):
			entries = append(entries, Entry{Model: model, Present: false})
		default:
			return nil, err
		}
	}
	return entries, nil
}

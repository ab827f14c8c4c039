// Package credentials persists named API login profiles as a JSON object
// keyed by profile name.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qepting91/reddit-annotator/internal/domain"
)

// Store reads and writes the profile file. Every operation opens and
// releases the file within the call.
type Store struct {
	FilePath string
}

func NewStore(filePath string) *Store {
	return &Store{FilePath: filePath}
}

// Load returns all profiles, creating an empty store (and its directory)
// when the file does not exist yet.
func (s *Store) Load() (map[string]domain.Credentials, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read credential store: %w", err)
	}

	profiles := make(map[string]domain.Credentials)
	if len(strings.TrimSpace(string(data))) == 0 {
		return profiles, nil
	}
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("decode credential store %s: %w", s.FilePath, err)
	}
	for name, p := range profiles {
		p.Name = name
		profiles[name] = p
	}
	return profiles, nil
}

// Save overwrites the store with indented JSON.
func (s *Store) Save(profiles map[string]domain.Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.FilePath), 0700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	if profiles == nil {
		profiles = map[string]domain.Credentials{}
	}
	data, err := json.MarshalIndent(profiles, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.FilePath, data, 0600)
}

// AddProfile validates and persists a new profile. Existing profiles are
// never modified.
func (s *Store) AddProfile(name, clientID, clientSecret string) (domain.Credentials, error) {
	name = strings.TrimSpace(name)
	clientID = strings.TrimSpace(clientID)
	clientSecret = strings.TrimSpace(clientSecret)

	if clientID == "" {
		return domain.Credentials{}, &domain.ValidationError{Field: "client_id", Message: "must not be empty"}
	}
	if clientSecret == "" {
		return domain.Credentials{}, &domain.ValidationError{Field: "client_secret", Message: "must not be empty"}
	}
	if name == "" {
		return domain.Credentials{}, &domain.ValidationError{Field: "name", Message: "must not be empty"}
	}

	profiles, err := s.Load()
	if err != nil {
		return domain.Credentials{}, err
	}
	if _, ok := profiles[name]; ok {
		return domain.Credentials{}, fmt.Errorf("%w: %s", domain.ErrProfileExists, name)
	}

	p := domain.Credentials{Name: name, ClientID: clientID, ClientSecret: clientSecret}
	profiles[name] = p
	if err := s.Save(profiles); err != nil {
		return domain.Credentials{}, err
	}
	return p, nil
}

// Names returns the profile names in sorted order.
func Names(profiles map[string]domain.Credentials) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) ensure() error {
	if _, err := os.Stat(s.FilePath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return s.Save(nil)
}

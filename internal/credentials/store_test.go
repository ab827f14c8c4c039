package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qepting91/reddit-annotator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "redditscraper", "login_details.json"))
}

func TestLoad_CreatesEmptyStore(t *testing.T) {
	s := newTestStore(t)

	profiles, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, profiles)

	data, err := os.ReadFile(s.FilePath)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestLoad_ExistingDirectoryIsFine(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.FilePath), 0755))

	_, err := s.Load()
	assert.NoError(t, err)
}

func TestAddProfile_Reload(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddProfile("work", "id-123", "secret-456")
	require.NoError(t, err)

	profiles, err := s.Load()
	require.NoError(t, err)
	require.Contains(t, profiles, "work")
	assert.Equal(t, "work", profiles["work"].Name)
	assert.Equal(t, "id-123", profiles["work"].ClientID)
	assert.Equal(t, "secret-456", profiles["work"].ClientSecret)
}

func TestAddProfile_SecondKeepsFirst(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddProfile("work", "id-123", "secret-456")
	require.NoError(t, err)
	_, err = s.AddProfile("home", "id-789", "secret-000")
	require.NoError(t, err)

	profiles, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, domain.Credentials{Name: "work", ClientID: "id-123", ClientSecret: "secret-456"}, profiles["work"])
	assert.Equal(t, []string{"home", "work"}, Names(profiles))
}

func TestAddProfile_Validation(t *testing.T) {
	tests := []struct {
		name, profile, id, secret, field string
	}{
		{"empty id", "work", "", "secret", "client_id"},
		{"empty secret", "work", "id", "  ", "client_secret"},
		{"empty name", "", "id", "secret", "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)

			_, err := s.AddProfile(tt.profile, tt.id, tt.secret)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)

			profiles, err := s.Load()
			require.NoError(t, err)
			assert.Empty(t, profiles)
		})
	}
}

func TestAddProfile_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddProfile("work", "id-1", "secret-1")
	require.NoError(t, err)

	_, err = s.AddProfile("work", "id-2", "secret-2")
	assert.ErrorIs(t, err, domain.ErrProfileExists)

	profiles, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "id-1", profiles["work"].ClientID)
}

func TestSave_IndentedJSON(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(map[string]domain.Credentials{
		"work": {Name: "work", ClientID: "a", ClientSecret: "b"},
	}))

	data, err := os.ReadFile(s.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"work\": {\n        \"client_id\": \"a\",\n        \"client_secret\": \"b\"\n    }\n}", string(data))
}

func TestLoad_CorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.FilePath), 0755))
	require.NoError(t, os.WriteFile(s.FilePath, []byte("{not json"), 0600))

	_, err := s.Load()
	assert.Error(t, err)
}

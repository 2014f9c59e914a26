package practice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/services/config"
)

type stubRegistry struct {
	profiles []config.Profile
}

func (s *stubRegistry) GetProfiles(context.Context) ([]config.Profile, error) {
	return s.profiles, nil
}

func (s *stubRegistry) GetProfile(_ context.Context, name string) (*config.Profile, error) {
	for _, p := range s.profiles {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, assert.AnError
}

func TestListPractices(t *testing.T) {
	e := NewExplorer(&stubRegistry{profiles: []config.Profile{
		{Name: "acme", Storage: config.StorageRest, DSN: "https://example.com"},
		{Name: "smith", Storage: config.StorageSQLite, DSN: ":memory:"},
	}})

	practices, err := e.ListPractices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Practice{{Name: "acme"}, {Name: "smith"}}, practices)
}

func TestGetReporter(t *testing.T) {
	e := NewExplorer(&stubRegistry{profiles: []config.Profile{
		{Name: "acme", Storage: config.StorageRest, DSN: "https://example.com"},
	}})
	ctx := context.Background()

	r1, err := e.GetReporter(ctx, domain.Practice{Name: "acme"})
	require.NoError(t, err)
	require.NotNil(t, r1)

	// reporters are cached per practice
	r2, err := e.GetReporter(ctx, domain.Practice{Name: "acme"})
	require.NoError(t, err)
	assert.Same(t, r1, r2)

	_, err = e.GetReporter(ctx, domain.Practice{Name: "ghost"})
	assert.Error(t, err)
}

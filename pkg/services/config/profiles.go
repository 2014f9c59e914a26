package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

type StorageKind string

const (
	StorageSQLite StorageKind = "sqlite"
	StorageRest   StorageKind = "rest"
)

// Profile describes one practice's record backend. Profiles live in an ini
// file with one section per practice:
//
//	[acme]
//	storage = rest
//	dsn     = https://records.example.com/api
//	token   = ...
type Profile struct {
	Name    string
	Storage StorageKind
	DSN     string
	Token   string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]Profile, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profile, err := cr.GetProfile(ctx, section.Name())
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("practice profile %q not found", name)
	}

	storage := StorageKind(section.Key("storage").MustString(string(StorageSQLite)))
	switch storage {
	case StorageSQLite, StorageRest:
	default:
		return nil, fmt.Errorf("practice profile %q has unsupported storage %q", name, storage)
	}

	dsn := section.Key("dsn").String()
	if dsn == "" {
		return nil, fmt.Errorf("practice profile %q is missing dsn", name)
	}

	return &Profile{
		Name:    name,
		Storage: storage,
		DSN:     dsn,
		Token:   section.Key("token").String(),
	}, nil
}

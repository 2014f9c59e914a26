package practice

import (
	"context"
	"fmt"
	"sync"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/services/config"
	"github.com/de-tools/practice-atlas/pkg/services/records"
	"github.com/de-tools/practice-atlas/pkg/services/report"
	recordstore "github.com/de-tools/practice-atlas/pkg/store/records"
	"github.com/de-tools/practice-atlas/pkg/store/rest"
	"github.com/de-tools/practice-atlas/pkg/store/sqldb"
)

// Explorer resolves practices and hands out reporters bound to one practice's
// record backend. A reporter never sees rows from another practice.
type Explorer interface {
	ListPractices(ctx context.Context) ([]domain.Practice, error)
	GetReporter(ctx context.Context, p domain.Practice) (report.Reporter, error)
}

type explorer struct {
	registry config.Registry

	mu        sync.Mutex
	reporters map[string]report.Reporter
}

func NewExplorer(registry config.Registry) Explorer {
	return &explorer{
		registry:  registry,
		reporters: make(map[string]report.Reporter),
	}
}

func (e *explorer) ListPractices(ctx context.Context) ([]domain.Practice, error) {
	profiles, err := e.registry.GetProfiles(ctx)
	if err != nil {
		return nil, err
	}

	var practices []domain.Practice
	for _, profile := range profiles {
		practices = append(practices, domain.Practice{Name: profile.Name})
	}
	return practices, nil
}

func (e *explorer) GetReporter(ctx context.Context, p domain.Practice) (report.Reporter, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if r, ok := e.reporters[p.Name]; ok {
		return r, nil
	}

	profile, err := e.registry.GetProfile(ctx, p.Name)
	if err != nil {
		return nil, err
	}

	st, err := openStore(profile)
	if err != nil {
		return nil, err
	}

	r := report.NewReporter(profile.Name, records.NewFetcher(st))
	e.reporters[p.Name] = r
	return r, nil
}

func openStore(profile *config.Profile) (recordstore.Store, error) {
	switch profile.Storage {
	case config.StorageSQLite:
		db, err := sqldb.OpenSQLite(profile.DSN)
		if err != nil {
			return nil, err
		}
		return sqldb.NewStore(db), nil
	case config.StorageRest:
		return rest.NewStore(rest.Config{BaseURL: profile.DSN, Token: profile.Token}), nil
	}
	return nil, fmt.Errorf("unsupported storage kind %q for practice %q", profile.Storage, profile.Name)
}

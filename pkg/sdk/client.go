package solrdesk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/solrdesk/internal/db"
	"github.com/kailas-cloud/solrdesk/internal/db/memory"
	dbRedis "github.com/kailas-cloud/solrdesk/internal/db/redis"
	domcol "github.com/kailas-cloud/solrdesk/internal/domain/collection"
	dompref "github.com/kailas-cloud/solrdesk/internal/domain/preferences"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/result"
	domtr "github.com/kailas-cloud/solrdesk/internal/domain/translation"
	prefsrepo "github.com/kailas-cloud/solrdesk/internal/repository/preferences"
	"github.com/kailas-cloud/solrdesk/internal/transport/solrapi"
	collectionuc "github.com/kailas-cloud/solrdesk/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/solrdesk/internal/usecase/health"
	preferencesuc "github.com/kailas-cloud/solrdesk/internal/usecase/preferences"
	searchuc "github.com/kailas-cloud/solrdesk/internal/usecase/search"
	translationuc "github.com/kailas-cloud/solrdesk/internal/usecase/translation"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped out in tests.
type collectionUseCase interface {
	List(ctx context.Context) ([]domcol.Descriptor, error)
	Refresh(ctx context.Context) ([]domcol.Descriptor, error)
}

type searchUseCase interface {
	Search(ctx context.Context, sess *searchuc.Session, query string, cols []string) (result.Snapshot, error)
	Continue(ctx context.Context, sess *searchuc.Session) (result.Snapshot, error)
	LoadMore(ctx context.Context, sess *searchuc.Session, col string) (searchuc.LaneResult, error)
	LoadMoreAll(ctx context.Context, sess *searchuc.Session, cols []string) (map[string]searchuc.LaneResult, error)
	Select(ctx context.Context, sess *searchuc.Session, col string) (result.Snapshot, error)
	SetPage(sess *searchuc.Session, col string, n int) (result.PageView, error)
	View(sess *searchuc.Session, col string) (result.PageView, error)
	Snapshot(sess *searchuc.Session) result.Snapshot
}

type sessionFactory interface {
	Create(profile string) *searchuc.Session
}

type translationUseCase interface {
	List(ctx context.Context, language string) ([]domtr.Translation, error)
	Create(ctx context.Context, key, language, value string) (domtr.Translation, error)
	Update(ctx context.Context, id, key, language, value string) (domtr.Translation, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, w io.Writer, language string) (int, error)
	Import(ctx context.Context, r io.Reader) (translationuc.ImportReport, error)
}

type preferencesUseCase interface {
	Load(ctx context.Context, profile string) (dompref.Preferences, error)
	Save(ctx context.Context, profile string, p dompref.Preferences) (dompref.Preferences, error)
	Reset(ctx context.Context, profile string) error
}

// Client is the solrdesk SDK entry point.
type Client struct {
	store     db.Store
	collSvc   collectionUseCase
	searchSvc searchUseCase
	sessions  sessionFactory
	trSvc     translationUseCase
	prefsSvc  preferencesUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. The context bounds the initial store readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.upstreamURL == "" {
		return nil, errors.New("solrdesk: index API URL required (use WithUpstream)")
	}

	api, err := solrapi.NewClient(&solrapi.Config{
		BaseURL:  cfg.upstreamURL,
		Timeout:  cfg.timeout,
		RetryMax: cfg.retryMax,
	})
	if err != nil {
		return nil, fmt.Errorf("solrdesk: %w", err)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("solrdesk: store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, api, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "memory":
		return memory.NewStore(), nil
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("solrdesk: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("solrdesk: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, api *solrapi.Client, cfg *clientConfig, obs *observer) *Client {
	prefsSvc := preferencesuc.New(prefsrepo.New(store, cfg.keyPrefix, cfg.prefsTTL))

	return &Client{
		store:     store,
		collSvc:   collectionuc.New(api, cfg.collectionsTTL),
		searchSvc: searchuc.New(prefsSvc, cfg.maxParallel),
		sessions:  searchuc.NewSessions(api, cfg.pageSize, cfg.sessionTTL),
		trSvc:     translationuc.New(api, cfg.translationsTTL),
		prefsSvc:  prefsSvc,
		healthSvc: healthuc.New(store, api),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Collections lists the searchable collections. refresh bypasses the cache.
func (c *Client) Collections(ctx context.Context, refresh bool) (_ []CollectionInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collections.list", start, err) }()

	list := c.collSvc.List
	if refresh {
		list = c.collSvc.Refresh
	}
	cols, err := list(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	out := make([]CollectionInfo, len(cols))
	for i, d := range cols {
		out[i] = fromInternalCollection(d)
	}
	return out, nil
}

// NewSearch opens a search session for a profile ("" means the default profile).
func (c *Client) NewSearch(profile string) *SearchSession {
	return &SearchSession{
		sess: c.sessions.Create(profile),
		svc:  c.searchSvc,
		obs:  c.obs,
	}
}

// Translations returns the translations catalog service.
func (c *Client) Translations() *TranslationService {
	return &TranslationService{svc: c.trSvc, obs: c.obs}
}

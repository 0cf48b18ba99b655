package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

type mockCacheRepo struct {
	values   map[string][]byte
	ttls     map[string]time.Duration
	counters map[string]int64
	patterns []string
	getErr   error
	setErr   error
	delErr   error
	incrErr  error
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{values: map[string][]byte{}, ttls: map[string]time.Duration{}, counters: map[string]int64{}}
}

func (m *mockCacheRepo) Counter(ctx context.Context, key string) (int64, error) {
	if m.getErr != nil {
		return 0, m.getErr
	}
	return m.counters[key], nil
}

func (m *mockCacheRepo) Increment(ctx context.Context, key string) (int64, error) {
	if m.incrErr != nil {
		return 0, m.incrErr
	}
	m.counters[key]++
	return m.counters[key], nil
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	data, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = data
	m.ttls[key] = ttl
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	if m.delErr != nil {
		return m.delErr
	}
	m.patterns = append(m.patterns, pattern)
	m.values = map[string][]byte{}
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, NewMetricsService(), 0, nil, true)
	ctx := context.Background()

	var out []string
	hit, err := svc.Get(ctx, "report_cards:pending:a", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(ctx, "report_cards:pending:a", []string{"rc-1"}, 0))
	assert.Equal(t, time.Minute, repo.ttls["report_cards:pending:a"])

	hit, err = svc.Get(ctx, "report_cards:pending:a", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"rc-1"}, out)

	require.NoError(t, svc.Set(ctx, "report_cards:pending:b", []string{"rc-2"}, 5*time.Second))
	assert.Equal(t, 5*time.Second, repo.ttls["report_cards:pending:b"])

	require.NoError(t, svc.Invalidate(ctx, pendingCachePattern))
	assert.Equal(t, []string{pendingCachePattern}, repo.patterns)
	hit, err = svc.Get(ctx, "report_cards:pending:a", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, false)
	ctx := context.Background()

	assert.False(t, svc.Enabled())
	require.NoError(t, svc.Set(ctx, "k", "v", 0))
	assert.Empty(t, repo.values)
	var out string
	hit, err := svc.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, svc.Invalidate(ctx, "*"))
	assert.Empty(t, repo.patterns)

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
}

func TestCacheServiceSurfacesBackendErrors(t *testing.T) {
	repo := newMockCacheRepo()
	repo.getErr = errors.New("i/o timeout")
	repo.setErr = errors.New("i/o timeout")
	repo.delErr = errors.New("i/o timeout")
	svc := NewCacheService(repo, nil, time.Minute, nil, true)
	ctx := context.Background()

	var out string
	hit, err := svc.Get(ctx, "k", &out)
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Error(t, svc.Set(ctx, "k", "v", 0))
	assert.Error(t, svc.Invalidate(ctx, "*"))

	_, err = svc.Generation(ctx, pendingGenerationKey)
	assert.Error(t, err)
	repo.incrErr = errors.New("i/o timeout")
	assert.Error(t, svc.BumpGeneration(ctx, pendingGenerationKey))
}

func TestCacheServiceGeneration(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)
	ctx := context.Background()

	gen, err := svc.Generation(ctx, pendingGenerationKey)
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, svc.BumpGeneration(ctx, pendingGenerationKey))
	require.NoError(t, svc.BumpGeneration(ctx, pendingGenerationKey))
	gen, err = svc.Generation(ctx, pendingGenerationKey)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	disabled := NewCacheService(repo, nil, time.Minute, nil, false)
	require.NoError(t, disabled.BumpGeneration(ctx, pendingGenerationKey))
	gen, err = disabled.Generation(ctx, pendingGenerationKey)
	require.NoError(t, err)
	assert.Zero(t, gen)
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/GoArmGo/StyleInspo/internal/authz"
	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/messaging/payloads"
)

func adminCtx() context.Context {
	return authz.WithPrincipal(context.Background(), authz.Principal{Subject: "admin@example.com", Role: authz.RoleAdmin})
}

// memLooks: хранилище образов в памяти; записи копируются через JSON
type memLooks struct {
	mu      sync.Mutex
	looks   map[string][]byte
	getErr  error
	updates int
}

func newMemLooks() *memLooks {
	return &memLooks{looks: map[string][]byte{}}
}

func (m *memLooks) put(l domain.Look) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, _ := json.Marshal(l)
	m.looks[l.ID] = b
}

func (m *memLooks) get(id string) *domain.Look {
	b, ok := m.looks[id]
	if !ok {
		return nil
	}
	var l domain.Look
	_ = json.Unmarshal(b, &l)
	return &l
}

func (m *memLooks) CreateLook(_ context.Context, look *domain.Look) (*domain.Look, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing := m.get(look.ID); existing != nil {
		return existing, false, nil
	}
	b, _ := json.Marshal(look)
	m.looks[look.ID] = b
	return m.get(look.ID), true, nil
}

func (m *memLooks) GetLook(_ context.Context, id string) (*domain.Look, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.get(id), nil
}

func (m *memLooks) ListLooks(_ context.Context) ([]domain.Look, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Look, 0, len(m.looks))
	for id := range m.looks {
		out = append(out, *m.get(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memLooks) UpdateLook(_ context.Context, id string, p domain.LookPatch) (*domain.Look, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.get(id)
	if l == nil {
		return nil, nil
	}
	m.updates++
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.MainImage != nil {
		l.MainImage = *p.MainImage
	}
	if p.Items != nil {
		l.Items = *p.Items
	}
	if p.Tags != nil {
		l.Tags = *p.Tags
	}
	if p.SEO != nil {
		l.SEO = p.SEO
	}
	if p.AIAnalysis != nil {
		l.AIAnalysis = p.AIAnalysis
	}
	if p.Occasion != nil {
		l.Occasion = *p.Occasion
	}
	if p.Season != nil {
		l.Season = *p.Season
	}
	if p.SEOLastUpdated != nil {
		l.SEOLastUpdated = p.SEOLastUpdated
	}
	b, _ := json.Marshal(l)
	m.looks[id] = b
	return m.get(id), nil
}

func (m *memLooks) DeleteLook(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.looks[id]
	delete(m.looks, id)
	return ok, nil
}

// fakeMedia считает «своими» URL с префиксом https://cdn.test/
type fakeMedia struct {
	mu        sync.Mutex
	deleted   []string
	failKeys  map[string]bool
	uploaded  map[string]string
	uploadErr error
}

const cdnPrefix = "https://cdn.test/"

func (f *fakeMedia) Upload(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploaded == nil {
		f.uploaded = map[string]string{}
	}
	f.uploaded[key] = contentType
	return cdnPrefix + key, nil
}

func (f *fakeMedia) Delete(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	if f.failKeys[key] {
		return false, errors.New("storage unavailable")
	}
	return true, nil
}

func (f *fakeMedia) PublicIDFromURL(rawURL string) (string, bool) {
	if len(rawURL) > len(cdnPrefix) && rawURL[:len(cdnPrefix)] == cdnPrefix {
		return rawURL[len(cdnPrefix):], true
	}
	return "", false
}

type fakeVision struct {
	result *domain.VisionAnalysis
	calls  int
}

func (f *fakeVision) Analyze(context.Context, string) *domain.VisionAnalysis {
	f.calls++
	return f.result
}

type fakePublisher struct {
	jobs []payloads.SEOGenerationPayload
	err  error
}

func (f *fakePublisher) PublishSEOGenerationRequest(_ context.Context, p payloads.SEOGenerationPayload) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, p)
	return nil
}

type memThemes struct {
	mu     sync.Mutex
	themes map[string]domain.ThemeSettings
}

func (m *memThemes) GetActiveTheme(context.Context) (*domain.ThemeSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.themes {
		if t.IsActive {
			return &t, nil
		}
	}
	return nil, nil
}

func (m *memThemes) SaveActiveTheme(_ context.Context, theme *domain.ThemeSettings) (*domain.ThemeSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.themes == nil {
		m.themes = map[string]domain.ThemeSettings{}
	}
	for id, t := range m.themes {
		t.IsActive = false
		m.themes[id] = t
	}
	saved := *theme
	saved.IsActive = true
	m.themes[saved.ID] = saved
	return &saved, nil
}

func (m *memThemes) CountActiveThemes(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.themes {
		if t.IsActive {
			n++
		}
	}
	return n, nil
}

type memSettings struct {
	current *domain.SiteSettings
}

func (m *memSettings) GetOrCreateSettings(context.Context) (*domain.SiteSettings, error) {
	if m.current == nil {
		def := domain.DefaultSiteSettings()
		m.current = &def
	}
	s := *m.current
	return &s, nil
}

func (m *memSettings) SaveSettings(_ context.Context, s *domain.SiteSettings) (*domain.SiteSettings, error) {
	saved := *s
	m.current = &saved
	return &saved, nil
}

type memPages struct {
	pages map[string]domain.Page
}

func (m *memPages) ListPages(context.Context) ([]domain.Page, error) {
	out := make([]domain.Page, 0, len(m.pages))
	for _, p := range m.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memPages) GetPage(_ context.Context, id string) (*domain.Page, error) {
	p, ok := m.pages[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPages) UpdatePage(_ context.Context, id string, u domain.PageUpdate) (*domain.Page, error) {
	p, ok := m.pages[id]
	if !ok {
		return nil, nil
	}
	p.Title, p.Content = u.Title, u.Content
	m.pages[id] = p
	return &p, nil
}

type fakeMailer struct {
	configured bool
	err        error
	sent       []domain.OutgoingEmail
}

func (f *fakeMailer) Configured() bool { return f.configured }

func (f *fakeMailer) Send(_ context.Context, msg domain.OutgoingEmail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type memEvents struct {
	mu      sync.Mutex
	views   []domain.PageView
	clicks  []domain.AffiliateClick
	failing bool
}

func (m *memEvents) SavePageView(ctx context.Context, v *domain.PageView) error {
	if m.failing {
		return errors.New("insert failed")
	}
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("write without deadline")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views = append(m.views, *v)
	return nil
}

func (m *memEvents) SaveAffiliateClick(_ context.Context, c *domain.AffiliateClick) error {
	if m.failing {
		return errors.New("insert failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicks = append(m.clicks, *c)
	return nil
}

func (m *memEvents) GetSummary(context.Context) (*domain.AnalyticsSummary, error) {
	return &domain.AnalyticsSummary{
		TopLooks:        []domain.LookViews{},
		RecentViews:     []domain.PageView{},
		AffiliateClicks: []domain.LookClicks{},
		DailyViews:      []domain.DailyViews{},
	}, nil
}

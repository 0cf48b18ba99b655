package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	"github.com/noah-isme/sma-reportcard-api/internal/repository"
)

const (
	testCampus    = "campus-1"
	testClass     = "class-10a"
	testTemplate  = "tmpl-1"
	gradeHead     = "grade-head"
	homeroomL2    = "homeroom-l2"
	mathManager   = "math-manager"
	bioManager    = "bio-manager"
	stageReviewer = "stage-reviewer"
	principal     = "principal"
	homeroomTchr  = "homeroom-teacher"
	mathTeacher   = "math-teacher"
	bioTeacher    = "bio-teacher"
)

// memReportCards keeps report cards as JSON blobs and mimics row locks,
// optimistic versions and savepoints of the Postgres repository.
type memReportCards struct {
	mu      sync.Mutex
	rows    map[string][]byte
	locks   map[string]*sync.Mutex
	commits int

	listErr   error
	updateErr error
	createErr error
	created   []models.ReportCard
	deleted   []string
}

func newMemReportCards(cards ...models.ReportCard) *memReportCards {
	m := &memReportCards{rows: map[string][]byte{}, locks: map[string]*sync.Mutex{}}
	for _, card := range cards {
		m.put(card)
	}
	return m
}

func (m *memReportCards) put(card models.ReportCard) {
	if card.Version == 0 {
		card.Version = 1
	}
	data, err := json.Marshal(card)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	m.rows[card.ID] = data
	m.mu.Unlock()
}

func (m *memReportCards) get(t *testing.T, id string) models.ReportCard {
	t.Helper()
	m.mu.Lock()
	data, ok := m.rows[id]
	m.mu.Unlock()
	require.True(t, ok, "report card %s not stored", id)
	var card models.ReportCard
	require.NoError(t, json.Unmarshal(data, &card))
	return card
}

func (m *memReportCards) rowLock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

func (m *memReportCards) decode(id string) (*models.ReportCard, error) {
	m.mu.Lock()
	data, ok := m.rows[id]
	m.mu.Unlock()
	if !ok {
		return nil, sql.ErrNoRows
	}
	var card models.ReportCard
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (m *memReportCards) WithinTx(ctx context.Context, fn func(repository.ReportCardTx) error) error {
	tx := &memTx{store: m, held: map[string]*sync.Mutex{}, writes: map[string][]byte{}, savepoints: map[string]map[string][]byte{}}
	defer tx.release()
	if err := fn(tx); err != nil {
		return err
	}
	m.mu.Lock()
	for id, data := range tx.writes {
		m.rows[id] = data
	}
	m.commits++
	m.mu.Unlock()
	return nil
}

func (m *memReportCards) FindByID(ctx context.Context, id string) (*models.ReportCard, error) {
	return m.decode(id)
}

func (m *memReportCards) matching(filter models.ReportCardFilter) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	ids := make([]string, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	sort.Strings(ids)

	wanted := map[string]bool{}
	for _, id := range filter.IDs {
		wanted[id] = true
	}
	var out []string
	for _, id := range ids {
		card, err := m.decode(id)
		if err != nil {
			return nil, err
		}
		if len(wanted) > 0 && !wanted[id] {
			continue
		}
		if filter.TemplateID != "" && card.TemplateID != filter.TemplateID {
			continue
		}
		if filter.ClassID != "" && card.ClassID != filter.ClassID {
			continue
		}
		if filter.CampusID != "" && card.CampusID != filter.CampusID {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func (m *memReportCards) List(ctx context.Context, filter models.ReportCardFilter) ([]models.ReportCard, error) {
	ids, err := m.matching(filter)
	if err != nil {
		return nil, err
	}
	cards := make([]models.ReportCard, 0, len(ids))
	for _, id := range ids {
		card, err := m.decode(id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

func (m *memReportCards) ExistingStudents(ctx context.Context, templateID string, studentIDs []string) (map[string]bool, error) {
	cards, err := m.List(ctx, models.ReportCardFilter{TemplateID: templateID})
	if err != nil {
		return nil, err
	}
	existing := map[string]bool{}
	for _, card := range cards {
		for _, id := range studentIDs {
			if card.StudentID == id {
				existing[id] = true
			}
		}
	}
	return existing, nil
}

func (m *memReportCards) CreateBatch(ctx context.Context, cards []models.ReportCard) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, card := range cards {
		m.put(card)
	}
	m.created = append(m.created, cards...)
	return nil
}

func (m *memReportCards) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type memTx struct {
	store      *memReportCards
	held       map[string]*sync.Mutex
	writes     map[string][]byte
	savepoints map[string]map[string][]byte
}

func (t *memTx) lock(id string) {
	if _, ok := t.held[id]; ok {
		return
	}
	l := t.store.rowLock(id)
	l.Lock()
	t.held[id] = l
}

func (t *memTx) release() {
	for _, l := range t.held {
		l.Unlock()
	}
}

func (t *memTx) current(id string) (*models.ReportCard, error) {
	if data, ok := t.writes[id]; ok {
		var card models.ReportCard
		if err := json.Unmarshal(data, &card); err != nil {
			return nil, err
		}
		return &card, nil
	}
	return t.store.decode(id)
}

func (t *memTx) GetForUpdate(ctx context.Context, id string) (*models.ReportCard, error) {
	t.lock(id)
	return t.current(id)
}

func (t *memTx) ListForUpdate(ctx context.Context, filter models.ReportCardFilter) ([]models.ReportCard, error) {
	ids, err := t.store.matching(filter)
	if err != nil {
		return nil, err
	}
	cards := make([]models.ReportCard, 0, len(ids))
	for _, id := range ids {
		t.lock(id)
		card, err := t.current(id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

func (t *memTx) Update(ctx context.Context, card *models.ReportCard) error {
	if t.store.updateErr != nil {
		return t.store.updateErr
	}
	stored, err := t.current(card.ID)
	if err != nil {
		return err
	}
	if stored.Version != card.Version {
		return repository.ErrVersionConflict
	}
	card.Version++
	data, err := json.Marshal(card)
	if err != nil {
		return err
	}
	t.writes[card.ID] = data
	return nil
}

func (t *memTx) Savepoint(ctx context.Context, name string) error {
	snapshot := make(map[string][]byte, len(t.writes))
	for id, data := range t.writes {
		snapshot[id] = data
	}
	t.savepoints[name] = snapshot
	return nil
}

func (t *memTx) RollbackToSavepoint(ctx context.Context, name string) error {
	snapshot, ok := t.savepoints[name]
	if !ok {
		return errors.New("unknown savepoint " + name)
	}
	t.writes = make(map[string][]byte, len(snapshot))
	for id, data := range snapshot {
		t.writes[id] = data
	}
	return nil
}

func (t *memTx) ReleaseSavepoint(ctx context.Context, name string) error {
	delete(t.savepoints, name)
	return nil
}

type templateStub struct {
	mu        sync.Mutex
	templates map[string]*models.ReportCardTemplate
	calls     int
}

func (s *templateStub) FindByID(ctx context.Context, id string) (*models.ReportCardTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if tmpl, ok := s.templates[id]; ok {
		return tmpl, nil
	}
	return nil, sql.ErrNoRows
}

type assignmentStub struct {
	subjects  map[string]map[string]bool // user -> class|subject
	homerooms map[string]string          // user -> class
	err       error
}

func (s *assignmentStub) TeachesSubject(ctx context.Context, userID, classID, subjectID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.subjects[userID][classID+"|"+subjectID], nil
}

func (s *assignmentStub) IsHomeroomTeacher(ctx context.Context, userID, classID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.homerooms[userID] == classID, nil
}

type configFinderStub struct {
	configs map[string]*models.ApprovalConfig
	err     error
}

func (s *configFinderStub) Find(ctx context.Context, campusID, stageID string) (*models.ApprovalConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	if cfg, ok := s.configs[campusID+"|"+stageID]; ok {
		return cfg, nil
	}
	return nil, sql.ErrNoRows
}

type notifierStub struct {
	mu     sync.Mutex
	events []models.ReportCardPublishedEvent
}

func (n *notifierStub) NotifyPublished(ctx context.Context, event models.ReportCardPublishedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type pendingCacheStub struct {
	mu          sync.Mutex
	values      map[string][]byte
	invalidated []string
	sets        int
	lastSetKey  string
	generation  int64
}

func (c *pendingCacheStub) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *pendingCacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.lastSetKey = key
	if c.values == nil {
		c.values = map[string][]byte{}
	}
	c.values[key] = data
	return nil
}

func (c *pendingCacheStub) Invalidate(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, pattern)
	c.values = nil
	return nil
}

func (c *pendingCacheStub) Generation(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, nil
}

func (c *pendingCacheStub) BumpGeneration(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return nil
}

func strPtr(v string) *string { return &v }

// newTestTemplate declares homeroom, scores for math and biology, and no
// other sections. Level 1 and 2 homeroom reviewers are configured.
func newTestTemplate() *models.ReportCardTemplate {
	return &models.ReportCardTemplate{
		ID:                 testTemplate,
		CampusID:           testCampus,
		Title:              "Semester 1",
		SchoolYear:         "2024/2025",
		Semester:           "1",
		EducationStageID:   "stage-sma",
		ProgramType:        models.ProgramDomestic,
		HomeroomEnabled:    true,
		ScoresEnabled:      true,
		ScoresSubjects:     []string{"math", "bio"},
		HomeroomReviewerL1: strPtr(gradeHead),
		HomeroomReviewerL2: strPtr(homeroomL2),
		SubjectManagers: models.SubjectManagers{
			"math": {mathManager},
			"bio":  {bioManager},
		},
	}
}

func newTestCard(id string, tmpl *models.ReportCardTemplate) models.ReportCard {
	card := models.ReportCard{
		ID:         id,
		TemplateID: tmpl.ID,
		StudentID:  "student-" + id,
		ClassID:    testClass,
		CampusID:   testCampus,
		SchoolYear: tmpl.SchoolYear,
		Semester:   tmpl.Semester,
		Version:    1,
	}
	NewApprovalStore(&card.Data).EnsureUnits(tmpl)
	AggregateApprovals(&card, tmpl)
	return card
}

type serviceFixture struct {
	svc       *ReportCardApprovalService
	store     *memReportCards
	templates *templateStub
	notifier  *notifierStub
	cache     *pendingCacheStub
	tmpl      *models.ReportCardTemplate
}

func newServiceFixture(t *testing.T, tmpl *models.ReportCardTemplate, cards ...models.ReportCard) *serviceFixture {
	t.Helper()
	store := newMemReportCards(cards...)
	templates := &templateStub{templates: map[string]*models.ReportCardTemplate{tmpl.ID: tmpl}}
	assignments := &assignmentStub{
		subjects: map[string]map[string]bool{
			mathTeacher: {testClass + "|math": true},
			bioTeacher:  {testClass + "|bio": true},
		},
		homerooms: map[string]string{homeroomTchr: testClass},
	}
	configs := &configFinderStub{configs: map[string]*models.ApprovalConfig{
		testCampus + "|stage-sma": {
			CampusID:         testCampus,
			EducationStageID: "stage-sma",
			Level3Reviewers:  []string{stageReviewer},
			Level4Approvers:  []string{principal},
		},
	}}
	notifier := &notifierStub{}
	cache := &pendingCacheStub{}

	var (
		clockMu sync.Mutex
		tick    = time.Date(2024, 11, 1, 8, 0, 0, 0, time.UTC)
	)
	clock := func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		tick = tick.Add(time.Second)
		return tick
	}

	svc := NewReportCardApprovalService(store, templates, NewApproverDirectory(assignments, configs), zap.NewNop(),
		WithPublishNotifier(notifier),
		WithPendingCache(cache, time.Minute),
		WithClock(clock),
		WithBatchLimit(100),
	)
	return &serviceFixture{svc: svc, store: store, templates: templates, notifier: notifier, cache: cache, tmpl: tmpl}
}

func teacher(id string) models.RequestContext {
	return models.RequestContext{ActorID: id, Role: models.RoleTeacher, CampusID: testCampus}
}

func admin() models.RequestContext {
	return models.RequestContext{ActorID: "admin-1", Role: models.RoleAdmin, CampusID: testCampus}
}

var (
	mathUnit = models.UnitKey{Section: models.SectionScores, SubjectID: "math"}
	bioUnit  = models.UnitKey{Section: models.SectionScores, SubjectID: "bio"}
)

// advanceToLevel2 submits and approves every unit of the test template.
func (f *serviceFixture) advanceToLevel2(t *testing.T, id string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.SubmitSection(ctx, teacher(homeroomTchr), id, UnitSelector{Section: models.SectionHomeroom})
	require.NoError(t, err)
	_, err = f.svc.ApproveLevel1(ctx, teacher(gradeHead), id)
	require.NoError(t, err)
	_, err = f.svc.ApproveLevel2(ctx, teacher(homeroomL2), id, UnitSelector{Section: models.SectionHomeroom})
	require.NoError(t, err)
	_, err = f.svc.SubmitSection(ctx, teacher(mathTeacher), id, UnitSelector{Section: models.SectionScores, SubjectID: "math"})
	require.NoError(t, err)
	_, err = f.svc.SubmitSection(ctx, teacher(bioTeacher), id, UnitSelector{Section: models.SectionScores, SubjectID: "bio"})
	require.NoError(t, err)
	_, err = f.svc.ApproveLevel2(ctx, teacher(mathManager), id, UnitSelector{Section: models.SectionScores, SubjectID: "math"})
	require.NoError(t, err)
	_, err = f.svc.ApproveLevel2(ctx, teacher(bioManager), id, UnitSelector{Section: models.SectionScores, SubjectID: "bio"})
	require.NoError(t, err)
}

package usecase

import (
	"context"
	"sort"
	"sync"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/domain/ports/adapter"
	"legal-docgen/internal/domain/ports/repository"
)

// Hand-written in-memory fakes for the use-case tests.

type mockGenerationRepo struct {
	mu      sync.Mutex
	records map[string]*model.GenerationRecord
	saveErr error
}

var _ repository.GenerationRepository = (*mockGenerationRepo)(nil)

func newMockGenerationRepo() *mockGenerationRepo {
	return &mockGenerationRepo{records: make(map[string]*model.GenerationRecord)}
}

func (m *mockGenerationRepo) Save(_ context.Context, _ repository.Tx, rec *model.GenerationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *mockGenerationRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.GenerationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockGenerationRepo) ListByUser(_ context.Context, _ repository.Tx, userID string, limit int) ([]*model.GenerationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.GenerationRecord
	for _, rec := range m.records {
		if rec.UserID == userID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockGenerationRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

type mockRenderJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*model.RenderJob
}

var _ repository.RenderJobRepository = (*mockRenderJobRepo)(nil)

func newMockRenderJobRepo() *mockRenderJobRepo {
	return &mockRenderJobRepo{jobs: make(map[string]*model.RenderJob)}
}

func (m *mockRenderJobRepo) Save(_ context.Context, _ repository.Tx, job *model.RenderJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *mockRenderJobRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.RenderJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (m *mockRenderJobRepo) FetchAndMarkProcessing(_ context.Context) (*model.RenderJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var oldest *model.RenderJob
	for _, job := range m.jobs {
		if job.Status != model.RenderJobStatusQueued {
			continue
		}
		if oldest == nil || job.CreatedAt.Before(oldest.CreatedAt) {
			oldest = job
		}
	}
	if oldest == nil {
		return nil, domain.ErrNotFound
	}
	oldest.Status = model.RenderJobStatusProcessing
	cp := *oldest
	return &cp, nil
}

func (m *mockRenderJobRepo) UpdateProgress(_ context.Context, id string, progress int, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	job.Progress = progress
	job.ProgressMessage = message
	return nil
}

type stubDrafter struct {
	markup string
	err    error
	calls  int
	last   adapter.DraftRequest
}

var _ adapter.Drafter = (*stubDrafter)(nil)

func (s *stubDrafter) Name() string { return "stub" }

func (s *stubDrafter) Draft(_ context.Context, req adapter.DraftRequest) (string, adapter.Usage, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return "", adapter.Usage{}, s.err
	}
	return s.markup, adapter.Usage{PromptTokens: 100, CompletionTokens: 400, TotalTokens: 500}, nil
}

type stubRenderer struct {
	data       []byte
	err        error
	calls      int
	lastFormat model.OutputFormat
	lastMeta   adapter.RenderMeta
}

var _ adapter.DocumentRenderer = (*stubRenderer)(nil)

func (s *stubRenderer) Render(_ context.Context, _ string, meta adapter.RenderMeta, format model.OutputFormat) ([]byte, error) {
	s.calls++
	s.lastFormat = format
	s.lastMeta = meta
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

type stubStore struct {
	url       string
	err       error
	persisted []adapter.PersistRequest
	removed   []string
}

var _ adapter.ArtifactStore = (*stubStore)(nil)

func (s *stubStore) Persist(_ context.Context, req adapter.PersistRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.persisted = append(s.persisted, req)
	return s.url + "/" + req.GenerationID + "/" + req.FileName, nil
}

func (s *stubStore) Remove(_ context.Context, generationID, fileName string) error {
	s.removed = append(s.removed, generationID+"/"+fileName)
	return nil
}

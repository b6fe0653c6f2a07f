package web

import (
	"context"
	"time"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/registry"
	"legal-docgen/internal/usecase"
)

// In-memory fakes backing the handler tests.

type fakeGenUC struct {
	reg     *registry.Registry
	records map[string]*model.GenerationRecord
	result  *model.GenerationResult
	genErr  error
}

var _ usecase.GenerationUseCase = (*fakeGenUC)(nil)

func newFakeGenUC() *fakeGenUC {
	return &fakeGenUC{
		reg:     registry.New(),
		records: make(map[string]*model.GenerationRecord),
		result:  &model.GenerationResult{DownloadURL: "https://storage.example/doc.pdf", DocumentID: "6f1a2b3c-4d5e-4f60-8a9b-0c1d2e3f4a5b"},
	}
}

func (f *fakeGenUC) ListContractTypes() []model.ContractTypeDefinition {
	return f.reg.ListTypes()
}

func (f *fakeGenUC) Generate(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	return f.GenerateWithProgress(ctx, req, nil)
}

func (f *fakeGenUC) GenerateWithProgress(_ context.Context, req model.GenerationRequest, _ usecase.ProgressFn) (*model.GenerationResult, error) {
	def, err := f.reg.ResolveType(req.ContractType)
	if err != nil {
		return nil, err
	}
	if err := f.reg.ValidateParameters(def, req.Parameters); err != nil {
		return nil, err
	}
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.result, nil
}

func (f *fakeGenUC) Get(_ context.Context, userID, documentID string) (*model.GenerationRecord, error) {
	rec, ok := f.records[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if rec.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return rec, nil
}

func (f *fakeGenUC) List(_ context.Context, userID string, _ int) ([]*model.GenerationRecord, error) {
	var out []*model.GenerationRecord
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeGenUC) Delete(_ context.Context, userID, documentID string) error {
	rec, ok := f.records[documentID]
	if !ok {
		return domain.ErrNotFound
	}
	if rec.UserID != userID {
		return domain.ErrForbidden
	}
	delete(f.records, documentID)
	return nil
}

func (f *fakeGenUC) ReRender(_ context.Context, userID, documentID string, _ model.OutputFormat) (*model.GenerationResult, error) {
	rec, ok := f.records[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if rec.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return &model.GenerationResult{DownloadURL: "https://storage.example/re.pdf", DocumentID: rec.ID}, nil
}

type fakeJobUC struct {
	jobs map[string]*model.RenderJob
	reg  *registry.Registry
}

var _ usecase.JobUseCase = (*fakeJobUC)(nil)

func newFakeJobUC() *fakeJobUC {
	return &fakeJobUC{jobs: make(map[string]*model.RenderJob), reg: registry.New()}
}

func (f *fakeJobUC) Submit(_ context.Context, req model.GenerationRequest) (*model.RenderJob, error) {
	def, err := f.reg.ResolveType(req.ContractType)
	if err != nil {
		return nil, err
	}
	if err := f.reg.ValidateParameters(def, req.Parameters); err != nil {
		return nil, err
	}
	job := &model.RenderJob{
		ID:           "01JA0000000000000000000000",
		UserID:       req.UserID,
		ContractType: req.ContractType,
		Status:       model.RenderJobStatusQueued,
		CreatedAt:    time.Now(),
	}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeJobUC) Status(_ context.Context, userID, jobID string) (*model.RenderJob, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if job.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

type fakeLimiter struct {
	allow bool
	err   error
	calls int
}

func (f *fakeLimiter) Allow(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	f.calls++
	return f.allow, f.err
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/domain/ports/adapter"
	"legal-docgen/internal/domain/ports/repository"
	"legal-docgen/internal/infra/logging"
	"legal-docgen/internal/prompt"
	"legal-docgen/internal/registry"
)

// Compile-time check
var _ GenerationUseCase = (*generationUC)(nil)

// ProgressFn receives stage transitions; the async path forwards them to the
// job record, the sync path passes nil.
type ProgressFn func(progress int, message string)

type GenerationUseCase interface {
	ListContractTypes() []model.ContractTypeDefinition
	Generate(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error)
	GenerateWithProgress(ctx context.Context, req model.GenerationRequest, progress ProgressFn) (*model.GenerationResult, error)
	Get(ctx context.Context, userID, documentID string) (*model.GenerationRecord, error)
	List(ctx context.Context, userID string, limit int) ([]*model.GenerationRecord, error)
	Delete(ctx context.Context, userID, documentID string) error
	ReRender(ctx context.Context, userID, documentID string, format model.OutputFormat) (*model.GenerationResult, error)
}

const defaultListLimit = 20

type generationUC struct {
	reg           *registry.Registry
	composer      *prompt.Composer
	drafter       adapter.Drafter
	renderer      adapter.DocumentRenderer
	store         adapter.ArtifactStore
	records       repository.GenerationRepository
	defaultFormat model.OutputFormat
	log           *zerolog.Logger
}

func NewGenerationUseCase(
	reg *registry.Registry,
	composer *prompt.Composer,
	drafter adapter.Drafter,
	renderer adapter.DocumentRenderer,
	store adapter.ArtifactStore,
	records repository.GenerationRepository,
	defaultFormat model.OutputFormat,
	log *zerolog.Logger,
) *generationUC {
	return &generationUC{
		reg:           reg,
		composer:      composer,
		drafter:       drafter,
		renderer:      renderer,
		store:         store,
		records:       records,
		defaultFormat: defaultFormat,
		log:           log,
	}
}

func (g *generationUC) ListContractTypes() []model.ContractTypeDefinition {
	return g.reg.ListTypes()
}

func (g *generationUC) Generate(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	return g.GenerateWithProgress(ctx, req, nil)
}

// GenerateWithProgress runs the full pipeline: validate, compose, draft,
// render, persist. The record is created before drafting starts and moved to
// a terminal status at the end; every stage error bubbles up unmodified.
func (g *generationUC) GenerateWithProgress(ctx context.Context, req model.GenerationRequest, progress ProgressFn) (*model.GenerationResult, error) {
	def, err := g.reg.ResolveType(req.ContractType)
	if err != nil {
		return nil, err
	}
	if err := g.reg.ValidateParameters(def, req.Parameters); err != nil {
		return nil, err
	}
	format := req.Format
	if format == "" {
		format = g.defaultFormat
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unsupported output format %q", domain.ErrValidation, format)
	}

	rec := &model.GenerationRecord{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		ContractType: def.ID,
		Parameters:   req.Parameters,
		Status:       model.GenerationStatusGenerating,
		CreatedAt:    time.Now(),
	}
	if err := g.records.Save(ctx, nil, rec); err != nil {
		return nil, err
	}
	ctx = logging.WithDocumentID(ctx, rec.ID)
	log := logging.With(ctx, g.log)

	result, err := g.runPipeline(ctx, def, rec, format, progress)
	if err != nil {
		rec.Status = model.GenerationStatusError
		rec.Error = err.Error()
		// Terminal status must land even when ctx is already dead.
		if saveErr := g.records.Save(context.Background(), nil, rec); saveErr != nil {
			log.Error().Err(saveErr).Msg("could not mark record as failed")
		}
		return nil, err
	}
	return result, nil
}

func (g *generationUC) runPipeline(ctx context.Context, def *model.ContractTypeDefinition, rec *model.GenerationRecord, format model.OutputFormat, progress ProgressFn) (*model.GenerationResult, error) {
	report := func(pct int, msg string) {
		if progress != nil {
			progress(pct, msg)
		}
	}

	report(10, "composing prompt")
	composed, err := g.composer.Compose(def, rec.Parameters)
	if err != nil {
		return nil, err
	}

	report(25, "drafting document")
	markup, _, err := g.drafter.Draft(ctx, adapter.DraftRequest{
		SystemInstructions: composed.SystemInstructions,
		UserInstructions:   composed.UserInstructions,
		GroundingStoreIDs:  composed.GroundingStoreIDs,
	})
	if err != nil {
		return nil, err
	}

	report(60, "rendering document")
	meta := adapter.RenderMeta{Title: def.Name, Footer: g.composer.FooterFields(def.ID, rec.Parameters)}
	data, err := g.renderer.Render(ctx, markup, meta, format)
	if err != nil {
		return nil, err
	}

	report(85, "storing artifact")
	fileName := model.ArtifactFileName(def.Name, rec.ID, format)
	downloadURL, err := g.store.Persist(ctx, adapter.PersistRequest{
		GenerationID: rec.ID,
		UserID:       rec.UserID,
		ContractType: def.ID,
		FileName:     fileName,
		ContentType:  format.ContentType(),
		Description:  def.Name + " generated for " + rec.UserID,
		Data:         data,
	})
	if err != nil {
		return nil, err
	}

	rec.Content = markup
	rec.Status = model.GenerationStatusCompleted
	if err := g.records.Save(ctx, nil, rec); err != nil {
		return nil, err
	}

	report(100, "completed")
	return &model.GenerationResult{DownloadURL: downloadURL, DocumentID: rec.ID}, nil
}

// Get returns a record to its owner; existence is checked before ownership,
// but a non-owner never learns more than "forbidden".
func (g *generationUC) Get(ctx context.Context, userID, documentID string) (*model.GenerationRecord, error) {
	rec, err := g.records.FindByID(ctx, nil, documentID)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return rec, nil
}

func (g *generationUC) List(ctx context.Context, userID string, limit int) ([]*model.GenerationRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return g.records.ListByUser(ctx, nil, userID, limit)
}

func (g *generationUC) Delete(ctx context.Context, userID, documentID string) error {
	rec, err := g.records.FindByID(ctx, nil, documentID)
	if err != nil {
		return err
	}
	if rec.UserID != userID {
		return domain.ErrForbidden
	}
	if err := g.records.Delete(ctx, nil, documentID); err != nil {
		return err
	}

	// Best-effort artifact cleanup; the record is the source of truth.
	if def, err := g.reg.ResolveType(rec.ContractType); err == nil {
		for _, f := range []model.OutputFormat{model.FormatPDF, model.FormatDocx} {
			if err := g.store.Remove(ctx, rec.ID, model.ArtifactFileName(def.Name, rec.ID, f)); err != nil {
				g.log.Debug().Err(err).Str("document_id", rec.ID).Msg("artifact cleanup skipped")
			}
		}
	}
	return nil
}

// ReRender produces a fresh artifact from the retained markup without a new
// drafting call.
func (g *generationUC) ReRender(ctx context.Context, userID, documentID string, format model.OutputFormat) (*model.GenerationResult, error) {
	rec, err := g.Get(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	if rec.Status != model.GenerationStatusCompleted || rec.Content == "" {
		return nil, fmt.Errorf("%w: record %s has no drafted content to render", domain.ErrValidation, documentID)
	}
	if format == "" {
		format = g.defaultFormat
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unsupported output format %q", domain.ErrValidation, format)
	}

	def, err := g.reg.ResolveType(rec.ContractType)
	if err != nil {
		return nil, err
	}

	meta := adapter.RenderMeta{Title: def.Name, Footer: g.composer.FooterFields(def.ID, rec.Parameters)}
	data, err := g.renderer.Render(ctx, rec.Content, meta, format)
	if err != nil {
		return nil, err
	}

	fileName := model.ArtifactFileName(def.Name, rec.ID, format)
	downloadURL, err := g.store.Persist(ctx, adapter.PersistRequest{
		GenerationID: rec.ID,
		UserID:       rec.UserID,
		ContractType: def.ID,
		FileName:     fileName,
		ContentType:  format.ContentType(),
		Description:  def.Name + " generated for " + rec.UserID,
		Data:         data,
	})
	if err != nil {
		return nil, err
	}
	return &model.GenerationResult{DownloadURL: downloadURL, DocumentID: rec.ID}, nil
}

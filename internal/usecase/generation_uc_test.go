package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/prompt"
	"legal-docgen/internal/registry"
)

var uuidShape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func ndaParams() map[string]any {
	return map[string]any{
		"disclosingParty": "Acme GmbH",
		"receivingParty":  "Beta Ltd",
		"purpose":         "evaluation of a potential partnership",
		"duration":        3,
		"mutualNDA":       true,
	}
}

func newTestUC(drafter *stubDrafter, renderer *stubRenderer, store *stubStore, repo *mockGenerationRepo) *generationUC {
	return NewGenerationUseCase(
		registry.New(),
		prompt.NewComposer(),
		drafter,
		renderer,
		store,
		repo,
		model.FormatPDF,
		testLogger(),
	)
}

func TestGenerate_FullPipeline(t *testing.T) {
	t.Parallel()

	drafter := &stubDrafter{markup: "# Non-Disclosure Agreement\n\n## 1. Parties\n\nAcme GmbH and Beta Ltd."}
	renderer := &stubRenderer{data: []byte("%PDF-1.7 fake")}
	store := &stubStore{url: "https://storage.example"}
	repo := newMockGenerationRepo()
	uc := newTestUC(drafter, renderer, store, repo)

	res, err := uc.Generate(context.Background(), model.GenerationRequest{
		ContractType: "nda",
		Parameters:   ndaParams(),
		UserID:       "user-1",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.DownloadURL == "" {
		t.Error("expected a non-empty download URL")
	}
	if !uuidShape.MatchString(res.DocumentID) {
		t.Errorf("document id %q is not a UUID", res.DocumentID)
	}

	rec, err := repo.FindByID(context.Background(), nil, res.DocumentID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if rec.Status != model.GenerationStatusCompleted {
		t.Errorf("record status = %q, want completed", rec.Status)
	}
	if rec.Content != drafter.markup {
		t.Error("record does not retain the drafted markup")
	}
	if rec.Parameters["disclosingParty"] != "Acme GmbH" {
		t.Error("record does not retain the request parameters")
	}

	if len(store.persisted) != 1 {
		t.Fatalf("persisted %d artifacts, want 1", len(store.persisted))
	}
	wantName := "NonDisclosureAgreement_" + res.DocumentID + ".pdf"
	if got := store.persisted[0].FileName; got != wantName {
		t.Errorf("file name = %q, want %q", got, wantName)
	}
	if renderer.lastFormat != model.FormatPDF {
		t.Errorf("rendered format = %q, want pdf", renderer.lastFormat)
	}
	if renderer.lastMeta.Title != "Non-Disclosure Agreement" {
		t.Errorf("render title = %q", renderer.lastMeta.Title)
	}
}

func TestGenerate_ValidationFailsBeforeDrafting(t *testing.T) {
	t.Parallel()

	drafter := &stubDrafter{markup: "x"}
	repo := newMockGenerationRepo()
	uc := newTestUC(drafter, &stubRenderer{}, &stubStore{}, repo)

	_, err := uc.Generate(context.Background(), model.GenerationRequest{
		ContractType: "nda",
		Parameters:   map[string]any{"disclosingParty": "Acme GmbH"},
		UserID:       "user-1",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if drafter.calls != 0 {
		t.Error("drafter must not be called for an invalid request")
	}
	if len(repo.records) != 0 {
		t.Error("no record should be created for an invalid request")
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	t.Parallel()

	uc := newTestUC(&stubDrafter{markup: "x"}, &stubRenderer{}, &stubStore{}, newMockGenerationRepo())
	_, err := uc.Generate(context.Background(), model.GenerationRequest{
		ContractType: "nda",
		Parameters:   ndaParams(),
		Format:       "odt",
		UserID:       "user-1",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestGenerate_EmptyDraftSkipsRenderer(t *testing.T) {
	t.Parallel()

	drafter := &stubDrafter{err: domain.ErrEmptyDraft}
	renderer := &stubRenderer{}
	repo := newMockGenerationRepo()
	uc := newTestUC(drafter, renderer, &stubStore{}, repo)

	_, err := uc.Generate(context.Background(), model.GenerationRequest{
		ContractType: "nda",
		Parameters:   ndaParams(),
		UserID:       "user-1",
	})
	if !errors.Is(err, domain.ErrEmptyDraft) {
		t.Fatalf("err = %v, want ErrEmptyDraft", err)
	}
	if renderer.calls != 0 {
		t.Error("renderer must not run when drafting produced nothing")
	}

	recs, _ := repo.ListByUser(context.Background(), nil, "user-1", 10)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want the failed one", len(recs))
	}
	if recs[0].Status != model.GenerationStatusError {
		t.Errorf("record status = %q, want error", recs[0].Status)
	}
	if recs[0].Error == "" {
		t.Error("failed record should carry the error message")
	}
}

func TestGenerate_RenderFailureMarksRecordError(t *testing.T) {
	t.Parallel()

	renderer := &stubRenderer{err: domain.ErrRendering}
	repo := newMockGenerationRepo()
	uc := newTestUC(&stubDrafter{markup: "# Doc"}, renderer, &stubStore{}, repo)

	_, err := uc.Generate(context.Background(), model.GenerationRequest{
		ContractType: "nda",
		Parameters:   ndaParams(),
		UserID:       "user-1",
	})
	if !errors.Is(err, domain.ErrRendering) {
		t.Fatalf("err = %v, want ErrRendering", err)
	}
	recs, _ := repo.ListByUser(context.Background(), nil, "user-1", 10)
	if len(recs) != 1 || recs[0].Status != model.GenerationStatusError {
		t.Fatal("expected a single record in error status")
	}
}

func TestGenerateWithProgress_ReportsStages(t *testing.T) {
	t.Parallel()

	uc := newTestUC(&stubDrafter{markup: "# Doc"}, &stubRenderer{data: []byte("x")}, &stubStore{url: "u"}, newMockGenerationRepo())

	var messages []string
	var last int
	_, err := uc.GenerateWithProgress(context.Background(), model.GenerationRequest{
		ContractType: "nda",
		Parameters:   ndaParams(),
		UserID:       "user-1",
	}, func(pct int, msg string) {
		if pct < last {
			t.Errorf("progress went backwards: %d after %d", pct, last)
		}
		last = pct
		messages = append(messages, msg)
	})
	if err != nil {
		t.Fatalf("GenerateWithProgress: %v", err)
	}
	if last != 100 {
		t.Errorf("final progress = %d, want 100", last)
	}
	joined := strings.Join(messages, "|")
	for _, want := range []string{"composing", "drafting", "rendering", "storing"} {
		if !strings.Contains(joined, want) {
			t.Errorf("progress messages %q missing stage %q", joined, want)
		}
	}
}

func TestGetAndList_Ownership(t *testing.T) {
	t.Parallel()

	repo := newMockGenerationRepo()
	uc := newTestUC(&stubDrafter{markup: "# Doc"}, &stubRenderer{data: []byte("x")}, &stubStore{url: "u"}, repo)

	res, err := uc.Generate(context.Background(), model.GenerationRequest{
		ContractType: "nda", Parameters: ndaParams(), UserID: "owner",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := uc.Get(context.Background(), "owner", res.DocumentID); err != nil {
		t.Errorf("owner Get: %v", err)
	}
	if _, err := uc.Get(context.Background(), "intruder", res.DocumentID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-owner Get err = %v, want ErrForbidden", err)
	}
	if _, err := uc.Get(context.Background(), "owner", "3b6f2a90-0000-4000-8000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown id err = %v, want ErrNotFound", err)
	}

	recs, err := uc.List(context.Background(), "owner", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != res.DocumentID {
		t.Error("listing should show the completed record")
	}
	other, _ := uc.List(context.Background(), "intruder", 0)
	if len(other) != 0 {
		t.Error("listing must be scoped to the caller")
	}
}

func TestList_NewestFirstWithLimit(t *testing.T) {
	t.Parallel()

	repo := newMockGenerationRepo()
	uc := newTestUC(&stubDrafter{}, &stubRenderer{}, &stubStore{}, repo)

	base := time.Now()
	for i := 0; i < 3; i++ {
		rec := &model.GenerationRecord{
			ID:           "00000000-0000-4000-8000-00000000000" + string(rune('0'+i)),
			UserID:       "u",
			ContractType: "nda",
			Status:       model.GenerationStatusCompleted,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Save(context.Background(), nil, rec); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := uc.List(context.Background(), "u", 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if !recs[0].CreatedAt.After(recs[1].CreatedAt) {
		t.Error("listing must be newest-first")
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	repo := newMockGenerationRepo()
	store := &stubStore{url: "u"}
	uc := newTestUC(&stubDrafter{markup: "# Doc"}, &stubRenderer{data: []byte("x")}, store, repo)

	res, err := uc.Generate(context.Background(), model.GenerationRequest{
		ContractType: "nda", Parameters: ndaParams(), UserID: "owner",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if err := uc.Delete(context.Background(), "intruder", res.DocumentID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner delete err = %v, want ErrForbidden", err)
	}
	if err := uc.Delete(context.Background(), "owner", res.DocumentID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := uc.Delete(context.Background(), "owner", res.DocumentID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}

	recs, _ := uc.List(context.Background(), "owner", 0)
	if len(recs) != 0 {
		t.Error("deleted record still appears in the listing")
	}
	if len(store.removed) == 0 {
		t.Error("delete should attempt artifact cleanup")
	}
}

func TestReRender(t *testing.T) {
	t.Parallel()

	repo := newMockGenerationRepo()
	renderer := &stubRenderer{data: []byte("bytes")}
	store := &stubStore{url: "u"}
	drafter := &stubDrafter{markup: "# Doc"}
	uc := newTestUC(drafter, renderer, store, repo)

	res, err := uc.Generate(context.Background(), model.GenerationRequest{
		ContractType: "nda", Parameters: ndaParams(), UserID: "owner",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	drafts := drafter.calls

	out, err := uc.ReRender(context.Background(), "owner", res.DocumentID, model.FormatDocx)
	if err != nil {
		t.Fatalf("ReRender: %v", err)
	}
	if out.DocumentID != res.DocumentID {
		t.Error("re-render must keep the same document id")
	}
	if drafter.calls != drafts {
		t.Error("re-render must not draft again")
	}
	if renderer.lastFormat != model.FormatDocx {
		t.Errorf("re-render format = %q, want docx", renderer.lastFormat)
	}

	if _, err := uc.ReRender(context.Background(), "intruder", res.DocumentID, model.FormatPDF); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-owner re-render err = %v, want ErrForbidden", err)
	}
}

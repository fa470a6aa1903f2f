package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/authz"
	"github.com/GoArmGo/StyleInspo/internal/core/ports"
	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/logger"
	"github.com/GoArmGo/StyleInspo/internal/messaging/payloads"
	"github.com/GoArmGo/StyleInspo/internal/seo"
)

func newSEOUC(looks *memLooks, vision *fakeVision, pub *fakePublisher) SEOUseCase {
	var publisher ports.SEOJobPublisher
	if pub != nil {
		publisher = pub
	}
	return NewSEOUseCase(looks, vision, seo.NewGenerator("Test Brand", func(int) int { return 0 }), publisher, logger.Discard())
}

func TestGenerateWithoutVisionDegrades(t *testing.T) {
	vision := &fakeVision{}
	uc := newSEOUC(newMemLooks(), vision, nil)

	resp, err := uc.Generate(adminCtx(), domain.SEOGenerationRequest{
		LookID:    "look-1",
		MainImage: "https://cdn.test/main.jpg",
		Items:     sampleLook().Items,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !resp.Success || resp.SEOData == nil || resp.AIAnalysis == nil {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.AIAnalysis.Confidence != 0.70 {
		t.Errorf("confidence = %v, want 0.70 without vision", resp.AIAnalysis.Confidence)
	}
	if vision.calls != 1 {
		t.Errorf("vision calls = %d", vision.calls)
	}
}

func TestGenerateRequiresMainImage(t *testing.T) {
	vision := &fakeVision{result: &domain.VisionAnalysis{Colors: []string{"red"}}}
	uc := newSEOUC(newMemLooks(), vision, nil)

	resp, err := uc.Generate(adminCtx(), domain.SEOGenerationRequest{LookID: "x", Title: "t"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Message != "Main image is required" {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if resp.Success {
		t.Error("request without main image must not succeed")
	}
	if vision.calls != 0 {
		t.Errorf("vision must not be called without an image")
	}
}

func TestGenerateRequiresAdmin(t *testing.T) {
	uc := newSEOUC(newMemLooks(), &fakeVision{}, nil)
	if _, err := uc.Generate(context.Background(), domain.SEOGenerationRequest{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v", err)
	}
}

func TestGenerateForLookPersistsBundle(t *testing.T) {
	looks := newMemLooks()
	looks.put(*sampleLook())
	vision := &fakeVision{result: &domain.VisionAnalysis{
		Colors:         []string{"navy"},
		StyleAesthetic: "minimalist",
		Occasion:       "work",
	}}
	uc := newSEOUC(looks, vision, nil)

	resp, err := uc.GenerateForLook(adminCtx(), "look-1")
	if err != nil || !resp.Success {
		t.Fatalf("resp = %+v err = %v", resp, err)
	}

	stored, _ := looks.GetLook(context.Background(), "look-1")
	if stored.SEO == nil || stored.AIAnalysis == nil || stored.SEOLastUpdated == nil {
		t.Fatalf("bundle not persisted: %+v", stored)
	}
	if stored.AIAnalysis.Confidence != 0.85 {
		t.Errorf("confidence = %v", stored.AIAnalysis.Confidence)
	}
	for _, it := range stored.Items {
		if stored.SEO.ItemDescriptions[it.ID] == "" || stored.SEO.ItemAltTexts[it.ID] == "" {
			t.Errorf("item %s missing copy", it.ID)
		}
	}
}

func TestGenerateForLookFailureKeepsStoredSEO(t *testing.T) {
	looks := newMemLooks()
	look := lookWithSEO()
	looks.put(look)
	// nil генератор вызывает панику внутри синтеза
	uc := &seoUseCase{
		looks:  looks,
		vision: &fakeVision{},
		logger: logger.Discard(),
		now:    func() time.Time { return time.Now().UTC() },
	}

	resp, err := uc.GenerateForLook(adminCtx(), "look-1")
	if err != nil {
		t.Fatalf("GenerateForLook: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("resp = %+v, want failure", resp)
	}
	if looks.updates != 0 {
		t.Error("stored look must not be written on failure")
	}
	stored, _ := looks.GetLook(context.Background(), "look-1")
	if stored.SEO == nil || stored.SEO.PageTitle != "Office Chic" {
		t.Errorf("stored SEO changed: %+v", stored.SEO)
	}
}

func TestGenerateForLookNotFound(t *testing.T) {
	uc := newSEOUC(newMemLooks(), &fakeVision{}, nil)
	if _, err := uc.GenerateForLook(adminCtx(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestEnqueueWithoutQueue(t *testing.T) {
	looks := newMemLooks()
	looks.put(*sampleLook())
	uc := newSEOUC(looks, &fakeVision{}, nil)

	err := uc.EnqueueForLook(adminCtx(), "look-1")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestEnqueuePublishesJob(t *testing.T) {
	looks := newMemLooks()
	looks.put(*sampleLook())
	pub := &fakePublisher{}
	uc := newSEOUC(looks, &fakeVision{}, pub)

	if err := uc.EnqueueForLook(adminCtx(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing look err = %v", err)
	}
	if err := uc.EnqueueForLook(adminCtx(), "look-1"); err != nil {
		t.Fatalf("EnqueueForLook: %v", err)
	}
	if len(pub.jobs) != 1 || pub.jobs[0].LookID != "look-1" || pub.jobs[0].RequestedAt.IsZero() {
		t.Errorf("jobs = %+v", pub.jobs)
	}

	pub.err = errors.New("channel closed")
	if err := uc.EnqueueForLook(adminCtx(), "look-1"); !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("publish failure err = %v", err)
	}
}

func TestProcessJob(t *testing.T) {
	looks := newMemLooks()
	looks.put(*sampleLook())
	uc := newSEOUC(looks, &fakeVision{}, nil)
	ctx := authz.System(context.Background())

	if err := uc.ProcessJob(ctx, payloads.SEOGenerationPayload{LookID: "look-1", RequestedAt: time.Now()}); err != nil {
		t.Fatalf("ProcessJob: %v", err)
	}
	stored, _ := looks.GetLook(context.Background(), "look-1")
	if stored.SEO == nil {
		t.Error("worker must persist the bundle")
	}

	// удалённый образ не повторяется
	if err := uc.ProcessJob(ctx, payloads.SEOGenerationPayload{LookID: "gone"}); err != nil {
		t.Errorf("missing look must be acked, got %v", err)
	}

	// ошибка хранилища возвращает задачу в очередь
	looks.getErr = errors.New("connection reset")
	if err := uc.ProcessJob(ctx, payloads.SEOGenerationPayload{LookID: "look-1"}); err == nil {
		t.Error("storage error must be returned for requeue")
	}
}

package service

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"docr/internal/domain"
	"docr/internal/port"
	"docr/internal/validate"
)

// BatchOptions holds batch extraction settings.
type BatchOptions struct {
	// Concurrency bounds the number of in-flight OCR engine calls. The
	// engine has finite capacity, so unbounded fan-out is never allowed.
	Concurrency int
	// SkipUnsupported drops rejected files from the result instead of
	// recording them as failure outcomes. Off by default: one outcome per
	// input item is the canonical behavior.
	SkipUnsupported bool
	// MaxFileSizeMB rejects oversized items before dispatch. Zero means
	// no limit.
	MaxFileSizeMB int64
}

// ExtractionService orchestrates batch OCR extraction: it validates each
// file, fans extraction out to the engine, and assembles per-item outcomes
// in input order.
type ExtractionService interface {
	ProcessBatch(ctx context.Context, items []domain.UploadItem) ([]domain.Outcome, error)
}

type extractionService struct {
	extractor port.TextExtractor
	validator *validate.Validator
	opts      BatchOptions
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(extractor port.TextExtractor, validator *validate.Validator, opts BatchOptions) ExtractionService {
	if validator == nil {
		validator = validate.New(validate.DefaultConfig())
	}
	return &extractionService{
		extractor: extractor,
		validator: validator,
		opts:      opts,
	}
}

// ProcessBatch runs the per-item pipeline over a submitted batch. An empty
// batch fails before any per-item work. A per-item failure never aborts
// its siblings; it becomes that item's outcome. When every resulting
// outcome is a failure, the outcomes are returned together with
// domain.ErrNoValidFiles so callers can report the condition distinctly
// from an empty submission.
func (s *extractionService) ProcessBatch(ctx context.Context, items []domain.UploadItem) ([]domain.Outcome, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	type job struct {
		slot int
		item domain.UploadItem
	}

	// Outcomes are written into pre-assigned slots so completion order of
	// the concurrent extraction calls never affects output order.
	var outcomes []domain.Outcome
	var jobs []job
	if s.opts.SkipUnsupported {
		for _, item := range items {
			if v := s.validateItem(item); !v.Accepted {
				log.Printf("extractionService.ProcessBatch: skipping %s: %s", item.FileName, v.Reason)
				continue
			}
			jobs = append(jobs, job{slot: len(outcomes), item: item})
			outcomes = append(outcomes, domain.Outcome{})
		}
	} else {
		outcomes = make([]domain.Outcome, len(items))
		for i, item := range items {
			if v := s.validateItem(item); !v.Accepted {
				outcomes[i] = domain.FailureOutcome(item.FileName, v.Reason)
				continue
			}
			jobs = append(jobs, job{slot: i, item: item})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())

	for _, j := range jobs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			text, err := s.extractor.Extract(gctx, j.item)
			if err != nil {
				log.Printf("extractionService.ProcessBatch: extraction failed for %s: %v", j.item.FileName, err)
				outcomes[j.slot] = domain.FailureOutcome(j.item.FileName, err.Error())
				return nil
			}
			outcomes[j.slot] = domain.SuccessOutcome(j.item.FileName, text)
			return nil
		})
	}

	// Extraction errors are already folded into outcomes; only
	// cancellation surfaces from the group.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		}
	}
	if len(outcomes) == 0 || failed == len(outcomes) {
		return outcomes, domain.ErrNoValidFiles
	}
	return outcomes, nil
}

func (s *extractionService) validateItem(item domain.UploadItem) validate.Verdict {
	if len(item.Bytes) == 0 {
		return validate.Verdict{Reason: "file is empty"}
	}
	if s.opts.MaxFileSizeMB > 0 && int64(len(item.Bytes)) > s.opts.MaxFileSizeMB*1024*1024 {
		return validate.Verdict{Reason: "file exceeds maximum allowed size"}
	}
	return s.validator.Validate(item.FileName, item.ContentType)
}

func (s *extractionService) concurrency() int {
	if s.opts.Concurrency <= 0 {
		return 1
	}
	return s.opts.Concurrency
}

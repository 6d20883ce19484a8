package consult

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sb-tools/merchant-lens/pkg/adapters"
	"github.com/sb-tools/merchant-lens/pkg/models/domain"
	"github.com/sb-tools/merchant-lens/pkg/services/consult/derivers"
	"github.com/sb-tools/merchant-lens/pkg/services/intent"
	"github.com/sb-tools/merchant-lens/pkg/services/narrative"
	"github.com/sb-tools/merchant-lens/pkg/services/report"
	"github.com/sb-tools/merchant-lens/pkg/store/duckdb/archive"
)

const defaultNarrativeTimeout = 30 * time.Second

// DataStore joins the deriver view of the datasets with direct merchant
// lookup. dataset.Store satisfies it.
type DataStore interface {
	derivers.Store
	Merchant(id string) (domain.Merchant, error)
}

// Consultant runs the consultation pipeline: extract the merchant id,
// classify the question, derive the intent's metrics and assemble the report.
type Consultant interface {
	Consult(ctx context.Context, question string, withNarrative bool) (domain.Consultation, error)
	MerchantInfo(ctx context.Context, id string) (domain.Merchant, error)
	MerchantReport(ctx context.Context, id string, tag domain.Intent) ([]domain.ReportSection, error)
	History(ctx context.Context, merchantID string, limit int) ([]domain.Consultation, error)
}

type DefaultConsultant struct {
	data       DataStore
	classifier *intent.Classifier
	registry   *derivers.Registry
	assembler  *report.Assembler
	generator  narrative.Generator
	archive    archive.Store
	timeout    time.Duration
}

// NewConsultant wires the pipeline. archiveStore may be nil; consultations
// are then not recorded and History is unavailable. A non-positive timeout
// falls back to the default narrative timeout.
func NewConsultant(
	data DataStore,
	generator narrative.Generator,
	archiveStore archive.Store,
	narrativeTimeout time.Duration,
) (*DefaultConsultant, error) {
	if data == nil {
		return nil, fmt.Errorf("data store is nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("narrative generator is nil")
	}
	if narrativeTimeout <= 0 {
		narrativeTimeout = defaultNarrativeTimeout
	}
	return &DefaultConsultant{
		data:       data,
		classifier: intent.NewClassifier(),
		registry:   derivers.Default(),
		assembler:  report.NewAssembler(),
		generator:  generator,
		archive:    archiveStore,
		timeout:    narrativeTimeout,
	}, nil
}

func (c *DefaultConsultant) Consult(
	ctx context.Context,
	question string,
	withNarrative bool,
) (domain.Consultation, error) {
	merchantID, err := intent.ExtractMerchantID(question)
	if err != nil {
		return domain.Consultation{}, err
	}

	tag := c.classifier.Classify(question)
	logger := zerolog.Ctx(ctx).With().
		Str("merchant", merchantID).
		Str("intent", string(tag)).
		Logger()

	merchant, err := c.data.Merchant(merchantID)
	if err != nil {
		return domain.Consultation{}, err
	}

	sections, err := c.sections(ctx, tag, merchant)
	if err != nil {
		return domain.Consultation{}, err
	}

	consultation := domain.Consultation{
		ID:         uuid.NewString(),
		MerchantID: merchant.ID,
		Intent:     tag,
		Question:   question,
		Sections:   sections,
		CreatedAt:  time.Now().UTC(),
	}

	if withNarrative {
		consultation.Narrative = c.narrate(logger.WithContext(ctx), tag, sections)
	}

	c.record(logger.WithContext(ctx), consultation)

	return consultation, nil
}

func (c *DefaultConsultant) MerchantInfo(_ context.Context, id string) (domain.Merchant, error) {
	return c.data.Merchant(id)
}

// MerchantReport derives and assembles the sections for one intent without
// touching narrative generation or the archive.
func (c *DefaultConsultant) MerchantReport(
	ctx context.Context,
	id string,
	tag domain.Intent,
) ([]domain.ReportSection, error) {
	merchant, err := c.data.Merchant(id)
	if err != nil {
		return nil, err
	}
	return c.sections(ctx, tag, merchant)
}

func (c *DefaultConsultant) History(
	ctx context.Context,
	merchantID string,
	limit int,
) ([]domain.Consultation, error) {
	if c.archive == nil {
		return nil, fmt.Errorf("consultation archive is not configured")
	}

	records, err := c.archive.ListByMerchant(ctx, merchantID, limit)
	if err != nil {
		return nil, err
	}

	consultations := make([]domain.Consultation, 0, len(records))
	for _, r := range records {
		consultation, err := adapters.MapStoreRecordToDomainConsultation(r)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).
				Str("consultation", r.ID).
				Msg("skipping unreadable archive record")
			continue
		}
		consultations = append(consultations, consultation)
	}
	return consultations, nil
}

func (c *DefaultConsultant) sections(
	ctx context.Context,
	tag domain.Intent,
	merchant domain.Merchant,
) ([]domain.ReportSection, error) {
	deriver, err := c.registry.Resolve(tag)
	if err != nil {
		return nil, err
	}

	bundle, err := deriver.Derive(ctx, merchant, c.data)
	if err != nil {
		return nil, err
	}

	return c.assembler.Assemble(tag, merchant, bundle)
}

// narrate generates the consultation prose under a bounded timeout. Failures
// degrade to an empty narrative; the assembled sections always survive.
func (c *DefaultConsultant) narrate(
	ctx context.Context,
	tag domain.Intent,
	sections []domain.ReportSection,
) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.generator.Generate(ctx, tag, sections)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("narrative generation failed")
		return ""
	}
	return text
}

// record appends the consultation to the archive. Best effort: a write
// failure is logged and the consultation is still returned to the caller.
func (c *DefaultConsultant) record(ctx context.Context, consultation domain.Consultation) {
	if c.archive == nil {
		return
	}

	record, err := adapters.MapDomainConsultationToStoreRecord(consultation)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to encode consultation for archive")
		return
	}
	if err := c.archive.Add(ctx, record); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("consultation", consultation.ID).
			Msg("failed to archive consultation")
	}
}

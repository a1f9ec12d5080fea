// Package service orchestrates use case authoring: validation before every
// write, identifier assignment, and translation of storage failures into
// coded domain errors.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"usecase-assistant/internal/audit"
	"usecase-assistant/internal/usecase/metrics"
	"usecase-assistant/internal/usecase/models"
	"usecase-assistant/internal/usecase/validation"
	dErrors "usecase-assistant/pkg/domain-errors"
	"usecase-assistant/pkg/platform/sentinel"
	platformstrings "usecase-assistant/pkg/platform/strings"
	"usecase-assistant/pkg/requestcontext"
)

const tracerName = "usecase-assistant/service"

// Repository is the persistence port. *store.FileStore implements it; missing
// records must be reported with an error matching sentinel.ErrNotFound.
type Repository interface {
	Save(ctx context.Context, uc *models.UseCase) error
	Load(ctx context.Context, id string) (*models.UseCase, error)
	LoadAll(ctx context.Context) ([]*models.UseCase, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) bool
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service is safe for sequential use; it adds no locking over the repository.
type Service struct {
	repo           Repository
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	auditPublisher AuditPublisher
	newID          func() string
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithIDGenerator replaces uuid.NewString for identifiers assigned on create.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// New constructs a Service.
func New(repo Repository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errors.New("use case repository is required")
	}
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s, nil
}

// Validate runs the methodology rules without touching storage.
func (s *Service) Validate(uc *models.UseCase) validation.Result {
	return validation.ValidateUseCase(uc)
}

// Create validates uc, assigns an identifier when it has none, and saves it.
// The stored value is returned; stakeholders come back trimmed and deduplicated.
func (s *Service) Create(ctx context.Context, uc *models.UseCase) (_ *models.UseCase, err error) {
	ctx, span := s.tracer.Start(ctx, "usecase.Create")
	defer func() { endSpan(span, err) }()

	if uc == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "use case is required")
	}
	uc, err = normalize(uc)
	if err != nil {
		return nil, err
	}
	if err := s.checkValid(ctx, uc); err != nil {
		return nil, err
	}
	if strings.TrimSpace(uc.ID()) == "" {
		uc = uc.WithID(s.newID())
	}
	span.SetAttributes(attribute.String("usecase.id", uc.ID()))

	if err := s.repo.Save(ctx, uc); err != nil {
		return nil, wrapRepoError(err, "failed to save use case")
	}
	s.metrics.IncrementSaved()
	s.logAudit(ctx, audit.EventUseCaseCreated, uc)
	return uc, nil
}

// Get loads the use case stored under id.
func (s *Service) Get(ctx context.Context, id string) (_ *models.UseCase, err error) {
	ctx, span := s.tracer.Start(ctx, "usecase.Get", trace.WithAttributes(attribute.String("usecase.id", id)))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(id) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "use case id is required")
	}
	uc, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, "failed to load use case")
	}
	return uc, nil
}

// Update replaces an existing use case. The identifier must already be stored.
func (s *Service) Update(ctx context.Context, uc *models.UseCase) (_ *models.UseCase, err error) {
	ctx, span := s.tracer.Start(ctx, "usecase.Update")
	defer func() { endSpan(span, err) }()

	if uc == nil || strings.TrimSpace(uc.ID()) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "use case id is required for update")
	}
	span.SetAttributes(attribute.String("usecase.id", uc.ID()))

	if !s.repo.Exists(ctx, uc.ID()) {
		return nil, dErrors.New(dErrors.CodeNotFound, "use case not found: "+uc.ID())
	}
	uc, err = normalize(uc)
	if err != nil {
		return nil, err
	}
	if err := s.checkValid(ctx, uc); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, uc); err != nil {
		return nil, wrapRepoError(err, "failed to save use case")
	}
	s.metrics.IncrementSaved()
	s.logAudit(ctx, audit.EventUseCaseUpdated, uc)
	return uc, nil
}

// Delete removes the use case stored under id.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	ctx, span := s.tracer.Start(ctx, "usecase.Delete", trace.WithAttributes(attribute.String("usecase.id", id)))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(id) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "use case id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, "failed to delete use case")
	}
	s.metrics.IncrementDeleted()
	s.logAuditID(ctx, audit.EventUseCaseDeleted, id)
	return nil
}

// List returns every stored use case ordered by title, ignoring case. Titles
// that differ only in case are ordered byte-wise; identical titles are
// ordered by identifier.
func (s *Service) List(ctx context.Context) (_ []*models.UseCase, err error) {
	ctx, span := s.tracer.Start(ctx, "usecase.List")
	defer func() { endSpan(span, err) }()

	ucs, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, wrapRepoError(err, "failed to list use cases")
	}
	slices.SortStableFunc(ucs, func(a, b *models.UseCase) int {
		if c := platformstrings.CompareFold(a.Title(), b.Title()); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})
	span.SetAttributes(attribute.Int("usecase.count", len(ucs)))
	return ucs, nil
}

// Exists reports whether a use case is stored under id.
func (s *Service) Exists(ctx context.Context, id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	return s.repo.Exists(ctx, id)
}

func (s *Service) checkValid(ctx context.Context, uc *models.UseCase) error {
	result := validation.ValidateUseCase(uc)
	if result.IsValid() {
		return nil
	}
	s.metrics.IncrementValidationFailures()
	s.logger.InfoContext(ctx, "use case rejected",
		"usecase_id", uc.ID(),
		"errors", len(result.Errors()),
	)
	return &ValidationError{Result: result}
}

// normalize trims and deduplicates stakeholders.
func normalize(uc *models.UseCase) (*models.UseCase, error) {
	p := uc.Params()
	p.Stakeholders = platformstrings.DedupeAndTrim(p.Stakeholders)
	return models.NewUseCase(p)
}

func wrapRepoError(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "use case not found")
	case isCoded(err):
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func isCoded(err error) bool {
	var de *dErrors.Error
	return errors.As(err, &de)
}

func (s *Service) logAudit(ctx context.Context, event audit.Action, uc *models.UseCase) {
	s.logger.InfoContext(ctx, string(event), auditAttrs(ctx, event,
		"usecase_id", uc.ID(),
		"title", uc.Title(),
	)...)
	s.emit(ctx, audit.Event{Action: event, UseCaseID: uc.ID(), Title: uc.Title(), Digest: uc.Hash()})
}

func (s *Service) logAuditID(ctx context.Context, event audit.Action, id string) {
	s.logger.InfoContext(ctx, string(event), auditAttrs(ctx, event, "usecase_id", id)...)
	s.emit(ctx, audit.Event{Action: event, UseCaseID: id})
}

func auditAttrs(ctx context.Context, event audit.Action, attributes ...any) []any {
	if invocationID := requestcontext.InvocationID(ctx); invocationID != "" {
		attributes = append(attributes, "invocation_id", invocationID)
	}
	return append(attributes, "event", string(event), "log_type", "audit")
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", string(event.Action), "error", err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

package studysession

import (
	"context"
	"errors"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"lang-portal/internal/validator"
)

var tracer = otel.Tracer("lang-portal/studysession")

type Service struct {
	sessions SessionRepository
	reviews  ReviewRepository
	catalog  CatalogRepository
	log      *zap.Logger
}

func NewService(sessions SessionRepository, reviews ReviewRepository, catalog CatalogRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		sessions: sessions,
		reviews:  reviews,
		catalog:  catalog,
		log:      log,
	}
}

// NormalizePage fills defaults and caps per_page. Values below one are rejected
// by the HTTP layer, so they are treated as "unset" here.
func NormalizePage(page Page) Page {
	if page.Page < 1 {
		page.Page = DefaultPage
	}
	if page.PerPage < 1 {
		page.PerPage = DefaultPerPage
	}
	if page.PerPage > MaxPerPage {
		page.PerPage = MaxPerPage
	}
	return page
}

// TotalPages returns ceil(total/perPage), which is zero when total is zero.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

func (s *Service) ListSessions(ctx context.Context, page Page) (SessionPage, error) {
	ctx, span := tracer.Start(ctx, "studysession.ListSessions")
	defer span.End()

	page = NormalizePage(page)
	items, total, err := s.sessions.ListSessions(ctx, page)
	if err != nil {
		return SessionPage{}, recordErr(span, err)
	}
	if items == nil {
		items = []Session{}
	}

	return SessionPage{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: TotalPages(total, page.PerPage),
	}, nil
}

func (s *Service) CreateSession(ctx context.Context, input CreateSessionInput) (Session, error) {
	ctx, span := tracer.Start(ctx, "studysession.CreateSession")
	defer span.End()

	if err := validateInput(input, ""); err != nil {
		return Session{}, recordErr(span, err)
	}

	session, err := s.sessions.CreateSession(ctx, *input.GroupID, *input.StudyActivityID)
	if err != nil {
		return Session{}, recordErr(span, err)
	}
	span.SetAttributes(attribute.Int64("session.id", session.ID))

	s.log.Info("study session created",
		zap.Int64("session_id", session.ID),
		zap.Int64("group_id", session.GroupID),
		zap.Int64("study_activity_id", session.ActivityID),
	)
	return session, nil
}

func (s *Service) GetSessionDetail(ctx context.Context, id int64, page Page) (SessionDetail, error) {
	ctx, span := tracer.Start(ctx, "studysession.GetSessionDetail", trace.WithAttributes(attribute.Int64("session.id", id)))
	defer span.End()

	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return SessionDetail{}, recordErr(span, err)
	}

	page = NormalizePage(page)
	words, total, err := s.sessions.ListSessionWords(ctx, id, page)
	if err != nil {
		return SessionDetail{}, recordErr(span, err)
	}
	if words == nil {
		words = []SessionWord{}
	}

	return SessionDetail{
		Session:    session,
		Words:      words,
		Total:      total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: TotalPages(total, page.PerPage),
	}, nil
}

func (s *Service) UpdateSession(ctx context.Context, id int64, update SessionUpdate) (Session, error) {
	ctx, span := tracer.Start(ctx, "studysession.UpdateSession", trace.WithAttributes(attribute.Int64("session.id", id)))
	defer span.End()

	if update.Empty() {
		return Session{}, recordErr(span, ErrNoUpdateFields)
	}
	if update.EndTime != nil {
		endTime := update.EndTime.UTC()
		update.EndTime = &endTime
	}

	session, err := s.sessions.UpdateSession(ctx, id, update)
	if err != nil {
		return Session{}, recordErr(span, err)
	}
	return session, nil
}

func (s *Service) DeleteSession(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "studysession.DeleteSession", trace.WithAttributes(attribute.Int64("session.id", id)))
	defer span.End()

	if err := s.sessions.DeleteSession(ctx, id); err != nil {
		return recordErr(span, err)
	}
	s.log.Info("study session deleted", zap.Int64("session_id", id))
	return nil
}

// SubmitReviews validates every element before touching storage, so a single bad
// element rejects the whole batch.
func (s *Service) SubmitReviews(ctx context.Context, sessionID int64, inputs []ReviewInput) (int, error) {
	ctx, span := tracer.Start(ctx, "studysession.SubmitReviews", trace.WithAttributes(
		attribute.Int64("session.id", sessionID),
		attribute.Int("reviews.count", len(inputs)),
	))
	defer span.End()

	if inputs == nil {
		return 0, recordErr(span, invalidf("request body must be an array of reviews"))
	}

	reviews := make([]Review, 0, len(inputs))
	for idx, input := range inputs {
		if err := validateInput(input, "review["+strconv.Itoa(idx)+"]: "); err != nil {
			return 0, recordErr(span, err)
		}
		reviews = append(reviews, Review{
			WordID:   *input.WordID,
			Correct:  *input.Correct,
			Response: input.Response,
		})
	}

	count, err := s.reviews.SubmitReviews(ctx, sessionID, reviews)
	if err != nil {
		return 0, recordErr(span, err)
	}

	s.log.Info("reviews submitted", zap.Int64("session_id", sessionID), zap.Int("reviews_count", count))
	return count, nil
}

// ResetHistory removes every session and review item. The word_reviews rollup
// is left as is and keeps the counts of the removed reviews until the next
// submission recomputes it.
func (s *Service) ResetHistory(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "studysession.ResetHistory")
	defer span.End()

	if err := s.sessions.ResetHistory(ctx); err != nil {
		return recordErr(span, err)
	}
	s.log.Warn("study history cleared; word review rollup retained")
	return nil
}

func (s *Service) WordStats(ctx context.Context, wordID int64) (WordStats, error) {
	ctx, span := tracer.Start(ctx, "studysession.WordStats", trace.WithAttributes(attribute.Int64("word.id", wordID)))
	defer span.End()

	stats, err := s.reviews.WordStats(ctx, wordID)
	if err != nil {
		return WordStats{}, recordErr(span, err)
	}
	return stats, nil
}

func (s *Service) ImportCatalog(ctx context.Context, catalog Catalog) error {
	if s.catalog == nil {
		return errors.New("catalog repository is not configured")
	}
	if err := s.catalog.ImportCatalog(ctx, catalog); err != nil {
		return err
	}
	s.log.Info("catalog imported",
		zap.Int("groups", len(catalog.Groups)),
		zap.Int("study_activities", len(catalog.StudyActivities)),
		zap.Int("words", len(catalog.Words)),
	)
	return nil
}

func validateInput(input any, prefix string) error {
	fieldErr, err := validator.FirstError(input)
	if err != nil {
		return err
	}
	if fieldErr != nil {
		return invalidf("%s%s", prefix, fieldErr.Message())
	}
	return nil
}

func recordErr(span trace.Span, err error) error {
	var validationErr *ValidationError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoUpdateFields) || errors.As(err, &validationErr) {
		span.SetAttributes(attribute.String("error.kind", "client"))
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

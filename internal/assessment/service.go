// internal/assessment/service.go
package assessment

import (
	"context"
	"math"
	"time"

	stderrors "credit-risk-service/internal/common/errors"
	"credit-risk-service/internal/common/logger"
	"credit-risk-service/internal/common/metrics"
	"credit-risk-service/internal/common/observability"
	"credit-risk-service/internal/models"
	"credit-risk-service/internal/risk"

	"github.com/google/uuid"
)

// Store persists assessment records and serves history queries.
type Store interface {
	SaveCompanyAssessment(ctx context.Context, rec *models.CompanyAssessment) error
	SaveIndividualAssessment(ctx context.Context, rec *models.IndividualAssessment) error
	CompanyHistory(ctx context.Context, name string, from, to time.Time) ([]models.CompanyAssessment, error)
	IndividualHistory(ctx context.Context, name string, from, to time.Time) ([]models.IndividualAssessment, error)
}

// Cache keeps the latest assessment per subject for fast repeat lookups.
type Cache interface {
	SetLatestCompany(ctx context.Context, rec *models.CompanyAssessment) error
	GetLatestCompany(ctx context.Context, name string) (*models.CompanyAssessment, error)
	SetLatestIndividual(ctx context.Context, rec *models.IndividualAssessment) error
	GetLatestIndividual(ctx context.Context, name string) (*models.IndividualAssessment, error)
}

// Indexer mirrors records into the search backend.
type Indexer interface {
	IndexCompany(ctx context.Context, rec *models.CompanyAssessment) error
	IndexIndividual(ctx context.Context, rec *models.IndividualAssessment) error
}

// Notifier alerts on high-risk outcomes.
type Notifier interface {
	NotifyCompanyHighRisk(ctx context.Context, rec *models.CompanyAssessment) error
	NotifyIndividualHighRisk(ctx context.Context, rec *models.IndividualAssessment) error
}

// Service orchestrates validation, scoring, persistence and the best-effort
// side channels (cache, search index, notifications). Persistence failures
// fail the assessment; side-channel failures are logged and swallowed.
type Service struct {
	store    Store
	cache    Cache
	indexer  Indexer
	notifier Notifier
	obs      *observability.Observability
	logger   logger.Logger
}

// NewService builds a Service. cache, indexer, notifier and obs may be nil
// when the corresponding subsystem is disabled.
func NewService(store Store, cache Cache, indexer Indexer, notifier Notifier, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		indexer:  indexer,
		notifier: notifier,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "assessment-service"}),
	}
}

// AssessCompany runs both bankruptcy models over the financial data,
// combines them pessimistically, persists the record and returns it.
func (s *Service) AssessCompany(ctx context.Context, companyName string, data risk.FinancialInput) (*models.CompanyAssessment, error) {
	start := time.Now()

	if err := risk.Validate(data, risk.CompanyFields); err != nil {
		s.recordFailure(ctx, "company", stderrors.ErrCodeValidationFailed)
		return nil, stderrors.NewValidationFailedError(err.Error())
	}

	altman, err := risk.CalculateAltmanScore(data)
	if err != nil {
		s.recordFailure(ctx, "company", stderrors.ErrCodeComputationFailed)
		return nil, stderrors.NewComputationFailedError("altman", err)
	}

	taffler, err := risk.CalculateTafflerScore(data)
	if err != nil {
		s.recordFailure(ctx, "company", stderrors.ErrCodeComputationFailed)
		return nil, stderrors.NewComputationFailedError("taffler", err)
	}

	combined := risk.CombineRisk(altman, taffler)
	now := time.Now().UTC()

	rec := &models.CompanyAssessment{
		ID:                     uuid.New().String(),
		CompanyName:            companyName,
		AssessmentDate:         now,
		FinancialData:          data,
		AltmanZScore:           round4(altman.Score),
		AltmanRiskLevel:        altman.Level,
		AltmanRecommendation:   altman.Recommendation,
		TafflerZScore:          round4(taffler.Score),
		TafflerRiskLevel:       taffler.Level,
		TafflerRecommendation:  taffler.Recommendation,
		CombinedRiskLevel:      combined.Level,
		CombinedRecommendation: combined.Recommendation,
		CreatedAt:              now,
	}

	if err := s.store.SaveCompanyAssessment(ctx, rec); err != nil {
		s.recordFailure(ctx, "company", stderrors.ErrCodeStorageFailed)
		return nil, stderrors.NewStorageFailedError(err).
			WithMetadata("altman_z_score", rec.AltmanZScore).
			WithMetadata("taffler_z_score", rec.TafflerZScore).
			WithMetadata("combined_risk_level", string(rec.CombinedRiskLevel))
	}

	s.afterCompanySave(ctx, rec)
	s.recordSuccess(ctx, "company", string(rec.CombinedRiskLevel), start)

	return rec, nil
}

// AssessIndividual scores a natural person, persists the record and
// returns it.
func (s *Service) AssessIndividual(ctx context.Context, fullName string, data risk.FinancialInput) (*models.IndividualAssessment, error) {
	start := time.Now()

	if err := risk.Validate(data, risk.IndividualFields); err != nil {
		s.recordFailure(ctx, "individual", stderrors.ErrCodeValidationFailed)
		return nil, stderrors.NewValidationFailedError(err.Error())
	}

	result, err := risk.CalculateIndividualScore(data)
	if err != nil {
		s.recordFailure(ctx, "individual", stderrors.ErrCodeComputationFailed)
		return nil, stderrors.NewComputationFailedError("individual", err)
	}

	now := time.Now().UTC()

	rec := &models.IndividualAssessment{
		ID:             uuid.New().String(),
		FullName:       fullName,
		AssessmentDate: now,
		FinancialData:  data,
		CreditScore:    round2(result.Score),
		RiskLevel:      result.Level,
		Recommendation: result.Recommendation,
		CreatedAt:      now,
	}

	if err := s.store.SaveIndividualAssessment(ctx, rec); err != nil {
		s.recordFailure(ctx, "individual", stderrors.ErrCodeStorageFailed)
		return nil, stderrors.NewStorageFailedError(err).
			WithMetadata("credit_score", rec.CreditScore).
			WithMetadata("risk_level", string(rec.RiskLevel))
	}

	s.afterIndividualSave(ctx, rec)
	s.recordSuccess(ctx, "individual", string(rec.RiskLevel), start)

	return rec, nil
}

// CompanyHistory returns persisted company assessments in [from, to],
// newest first.
func (s *Service) CompanyHistory(ctx context.Context, name string, from, to time.Time) ([]models.CompanyAssessment, error) {
	history, err := s.store.CompanyHistory(ctx, name, from, to)
	if err != nil {
		return nil, stderrors.NewRecordQueryFailedError(err)
	}
	return history, nil
}

// IndividualHistory returns persisted individual assessments in [from, to],
// newest first.
func (s *Service) IndividualHistory(ctx context.Context, name string, from, to time.Time) ([]models.IndividualAssessment, error) {
	history, err := s.store.IndividualHistory(ctx, name, from, to)
	if err != nil {
		return nil, stderrors.NewRecordQueryFailedError(err)
	}
	return history, nil
}

// LatestCompany returns the most recent assessment for a company, trying
// the cache before the database.
func (s *Service) LatestCompany(ctx context.Context, name string) (*models.CompanyAssessment, error) {
	if s.cache != nil {
		rec, err := s.cache.GetLatestCompany(ctx, name)
		if err != nil {
			s.logger.Warn("cache lookup failed", map[string]interface{}{
				"company": name,
				"error":   err.Error(),
			})
		} else if rec != nil {
			return rec, nil
		}
	}

	history, err := s.CompanyHistory(ctx, name, time.Time{}, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}
	return &history[0], nil
}

// ModelInfo describes the scoring models and their required inputs.
func (s *Service) ModelInfo() risk.ModelInfo {
	return risk.GetModelInfo()
}

func (s *Service) afterCompanySave(ctx context.Context, rec *models.CompanyAssessment) {
	if s.cache != nil {
		if err := s.cache.SetLatestCompany(ctx, rec); err != nil {
			s.logger.Warn("cache update failed", map[string]interface{}{
				"assessmentId": rec.ID,
				"error":        err.Error(),
			})
		}
	}
	if s.indexer != nil {
		if err := s.indexer.IndexCompany(ctx, rec); err != nil {
			s.logger.Warn("search index update failed", map[string]interface{}{
				"assessmentId": rec.ID,
				"error":        err.Error(),
			})
		}
	}
	if s.notifier != nil && rec.CombinedRiskLevel == risk.RiskHigh {
		if err := s.notifier.NotifyCompanyHighRisk(ctx, rec); err != nil {
			s.logger.Warn("high risk notification failed", map[string]interface{}{
				"assessmentId": rec.ID,
				"error":        err.Error(),
			})
		}
	}
}

func (s *Service) afterIndividualSave(ctx context.Context, rec *models.IndividualAssessment) {
	if s.cache != nil {
		if err := s.cache.SetLatestIndividual(ctx, rec); err != nil {
			s.logger.Warn("cache update failed", map[string]interface{}{
				"assessmentId": rec.ID,
				"error":        err.Error(),
			})
		}
	}
	if s.indexer != nil {
		if err := s.indexer.IndexIndividual(ctx, rec); err != nil {
			s.logger.Warn("search index update failed", map[string]interface{}{
				"assessmentId": rec.ID,
				"error":        err.Error(),
			})
		}
	}
	if s.notifier != nil && rec.RiskLevel == risk.RiskHigh {
		if err := s.notifier.NotifyIndividualHighRisk(ctx, rec); err != nil {
			s.logger.Warn("high risk notification failed", map[string]interface{}{
				"assessmentId": rec.ID,
				"error":        err.Error(),
			})
		}
	}
}

func (s *Service) recordSuccess(ctx context.Context, subjectType, riskLevel string, start time.Time) {
	metrics.AssessmentsCompleted.WithLabelValues(subjectType, riskLevel).Inc()
	metrics.AssessmentDuration.WithLabelValues(subjectType).Observe(time.Since(start).Seconds())
	if s.obs != nil {
		s.obs.RecordAssessment(ctx, subjectType, "completed")
		s.obs.RecordAssessmentDuration(ctx, time.Since(start), subjectType)
	}
}

func (s *Service) recordFailure(ctx context.Context, subjectType string, code stderrors.ErrorCode) {
	metrics.AssessmentsFailed.WithLabelValues(subjectType, string(code)).Inc()
	if s.obs != nil {
		s.obs.RecordAssessment(ctx, subjectType, "failed")
	}
}

// Scores are rounded only here, at the orchestration boundary. The scoring
// functions themselves return full precision.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// cmd/tools/seeder/main.go
//
// Seeds the assessment tables with six months of generated history for a
// fixed set of companies and individuals, scoring each record with the real
// models so the seeded data is internally consistent.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"credit-risk-service/internal/common/config"
	"credit-risk-service/internal/common/database"
	"credit-risk-service/internal/common/logger"
	"credit-risk-service/internal/models"
	"credit-risk-service/internal/risk"
	"credit-risk-service/internal/storage"
)

const seedMonths = 6

type companyProfile struct {
	name             string
	totalAssets      float64
	liabilitiesRatio float64
	salesRatio       float64
	profitRatio      float64
}

var companyProfiles = []companyProfile{
	{"BelAZ", 2500, 0.45, 1.45, 0.14},
	{"MTZ", 3200, 0.50, 0.90, 0.076},
	{"Grodno Azot", 1800, 0.55, 1.10, 0.10},
	{"Belshina", 1500, 0.48, 1.15, 0.11},
	{"Minsk Tractor Works", 2800, 0.47, 1.25, 0.13},
	{"Naftan", 4200, 0.58, 1.50, 0.08},
	{"Beltelecom", 3800, 0.46, 1.20, 0.15},
	{"Priorbank", 8670, 0.88, 0.15, 0.056},
}

var individualNames = []string{
	"Ivan Ivanov",
	"Petr Petrov",
	"Sidor Sidorov",
	"Anna Kozlova",
	"Dmitry Novikov",
	"Elena Morozova",
	"Andrei Volkov",
	"Maria Sokolova",
}

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for reproducible data")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()

	ctx := context.Background()
	if err := pg.Ping(ctx); err != nil {
		zapLog.Fatal("postgres ping failed", zap.Error(err))
	}

	store := storage.NewAssessmentStore(pg.DB, log)
	rng := rand.New(rand.NewSource(*seed))

	startDate := time.Now().UTC().AddDate(0, 0, -seedMonths*30)

	companyCount := 0
	for _, profile := range companyProfiles {
		trend := uniform(rng, 0.95, 1.08)
		for month := 0; month < seedMonths; month++ {
			date := startDate.AddDate(0, 0, month*30+rng.Intn(7)-3)
			data := generateCompanyData(rng, profile, trend)

			rec, err := buildCompanyRecord(profile.name, date, data)
			if err != nil {
				zapLog.Warn("company seed record skipped",
					zap.String("company", profile.name),
					zap.Error(err),
				)
				continue
			}
			if err := store.SaveCompanyAssessment(ctx, rec); err != nil {
				zapLog.Fatal("company seed insert failed", zap.Error(err))
			}
			companyCount++
			trend *= uniform(rng, 0.99, 1.01)
		}
	}

	individualCount := 0
	for _, name := range individualNames {
		trend := uniform(rng, 0.97, 1.05)
		for month := 0; month < seedMonths; month++ {
			date := startDate.AddDate(0, 0, month*30+rng.Intn(7)-3)
			data := generateIndividualData(rng, trend)

			rec, err := buildIndividualRecord(name, date, data)
			if err != nil {
				zapLog.Warn("individual seed record skipped",
					zap.String("name", name),
					zap.Error(err),
				)
				continue
			}
			if err := store.SaveIndividualAssessment(ctx, rec); err != nil {
				zapLog.Fatal("individual seed insert failed", zap.Error(err))
			}
			individualCount++
			trend *= uniform(rng, 0.99, 1.01)
		}
	}

	zapLog.Info("seeding complete",
		zap.Int("companyAssessments", companyCount),
		zap.Int("individualAssessments", individualCount),
	)
}

func buildCompanyRecord(name string, date time.Time, data risk.FinancialInput) (*models.CompanyAssessment, error) {
	altman, err := risk.CalculateAltmanScore(data)
	if err != nil {
		return nil, err
	}
	taffler, err := risk.CalculateTafflerScore(data)
	if err != nil {
		return nil, err
	}
	combined := risk.CombineRisk(altman, taffler)

	return &models.CompanyAssessment{
		ID:                     uuid.New().String(),
		CompanyName:            name,
		AssessmentDate:         date,
		FinancialData:          data,
		AltmanZScore:           round4(altman.Score),
		AltmanRiskLevel:        altman.Level,
		AltmanRecommendation:   altman.Recommendation,
		TafflerZScore:          round4(taffler.Score),
		TafflerRiskLevel:       taffler.Level,
		TafflerRecommendation:  taffler.Recommendation,
		CombinedRiskLevel:      combined.Level,
		CombinedRecommendation: combined.Recommendation,
		CreatedAt:              date,
	}, nil
}

func buildIndividualRecord(name string, date time.Time, data risk.FinancialInput) (*models.IndividualAssessment, error) {
	result, err := risk.CalculateIndividualScore(data)
	if err != nil {
		return nil, err
	}

	return &models.IndividualAssessment{
		ID:             uuid.New().String(),
		FullName:       name,
		AssessmentDate: date,
		FinancialData:  data,
		CreditScore:    math.Round(result.Score*100) / 100,
		RiskLevel:      result.Level,
		Recommendation: result.Recommendation,
		CreatedAt:      date,
	}, nil
}

func generateCompanyData(rng *rand.Rand, p companyProfile, trend float64) risk.FinancialInput {
	totalAssets := p.totalAssets * trend * uniform(rng, 0.97, 1.03)
	liabilities := totalAssets * p.liabilitiesRatio * uniform(rng, 0.98, 1.02)

	liquidityRatio := uniform(rng, 0.25, 0.65)
	currentLiabilitiesRatio := uniform(rng, 0.55, 0.70)
	currentLiabilities := liabilities * currentLiabilitiesRatio
	currentAssets := currentLiabilities * liquidityRatio

	if maxCurrent := totalAssets * 0.45; currentAssets > maxCurrent {
		currentAssets = maxCurrent
		currentLiabilities = currentAssets / liquidityRatio
	}

	return risk.FinancialInput{
		"current_assets":         currentAssets,
		"current_liabilities":    currentLiabilities,
		"debt_capital":           liabilities * uniform(rng, 0.65, 0.80),
		"liabilities":            liabilities,
		"sales_profit":           totalAssets * p.profitRatio * trend,
		"short_term_liabilities": currentLiabilities,
		"long_term_liabilities":  liabilities * (1 - currentLiabilitiesRatio),
		"total_assets":           totalAssets,
		"sales":                  totalAssets * p.salesRatio * trend,
	}
}

func generateIndividualData(rng *rand.Rand, trend float64) risk.FinancialInput {
	baseIncome := uniform(rng, 50000, 300000) * trend

	return risk.FinancialInput{
		"monthly_income":       baseIncome,
		"monthly_expenses":     baseIncome * uniform(rng, 0.55, 0.75),
		"credit_amount":        baseIncome * uniform(rng, 4, 10),
		"credit_history_score": uniform(rng, 0.4, 0.95),
		"has_collateral":       float64(rng.Intn(2)),
		"employment_years":     uniform(rng, 2, 18),
		"age":                  float64(28 + rng.Intn(33)),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

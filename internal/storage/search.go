// internal/storage/search.go
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"credit-risk-service/internal/common/logger"
	"credit-risk-service/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

// AssessmentIndexer mirrors assessment records into Elasticsearch for
// full-text history search.
type AssessmentIndexer struct {
	es              *elasticsearch.Client
	companyIndex    string
	individualIndex string
	logger          logger.Logger
}

func NewAssessmentIndexer(es *elasticsearch.Client, companyIndex, individualIndex string, log logger.Logger) *AssessmentIndexer {
	return &AssessmentIndexer{
		es:              es,
		companyIndex:    companyIndex,
		individualIndex: individualIndex,
		logger:          log.WithFields(map[string]interface{}{"component": "assessment-indexer"}),
	}
}

// IndexCompany indexes one company assessment document.
func (i *AssessmentIndexer) IndexCompany(ctx context.Context, rec *models.CompanyAssessment) error {
	return i.index(ctx, i.companyIndex, rec.ID, rec)
}

// IndexIndividual indexes one individual assessment document.
func (i *AssessmentIndexer) IndexIndividual(ctx context.Context, rec *models.IndividualAssessment) error {
	return i.index(ctx, i.individualIndex, rec.ID, rec)
}

func (i *AssessmentIndexer) index(ctx context.Context, index, docID string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal assessment document: %w", err)
	}

	res, err := i.es.Index(
		index,
		bytes.NewReader(body),
		i.es.Index.WithDocumentID(docID),
		i.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index assessment: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index assessment: %s", res.Status())
	}
	return nil
}

// SearchCompanies runs a match query over company names and returns the
// matching assessment documents, newest first.
func (i *AssessmentIndexer) SearchCompanies(ctx context.Context, query string, size int) ([]models.CompanyAssessment, error) {
	if size <= 0 {
		size = 10
	}

	searchBody := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"company_name": query,
			},
		},
		"sort": []map[string]interface{}{
			{"assessment_date": map[string]interface{}{"order": "desc"}},
		},
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchBody); err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.companyIndex),
		i.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search assessments: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search assessments: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.CompanyAssessment `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]models.CompanyAssessment, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}

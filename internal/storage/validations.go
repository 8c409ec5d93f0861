package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/innov8-labs/innov8/internal/model"
)

// SaveValidation persists a validation report and marks the idea validated
// in one transaction. The report's list fields are stored as JSON text.
func (s *Store) SaveValidation(ctx context.Context, ideaID string, report model.ValidationReport) (model.AIValidation, error) {
	v := model.AIValidation{
		ID:               uuid.NewString(),
		IdeaID:           ideaID,
		CreatedAt:        time.Now().UTC(),
		ValidationReport: report,
	}

	competitors, err := marshalList(report.CompetitorAnalysis)
	if err != nil {
		return model.AIValidation{}, fmt.Errorf("storage: encode competitor analysis: %w", err)
	}
	recommendations, err := marshalList(report.Recommendations)
	if err != nil {
		return model.AIValidation{}, fmt.Errorf("storage: encode recommendations: %w", err)
	}
	sources, err := json.Marshal(report.Sources)
	if err != nil {
		return model.AIValidation{}, fmt.Errorf("storage: encode sources: %w", err)
	}
	if report.Sources == nil {
		sources = []byte("[]")
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := ideaExists(ctx, tx, ideaID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ai_validations (id, idea_id, market_analysis, competitor_analysis,
				technical_feasibility, recommendations, desirability_score, validity_score,
				feasibility_score, overall_score, sources, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.IdeaID, report.MarketAnalysis, competitors,
			report.TechnicalFeasibility, recommendations,
			report.DesirabilityScore, report.ValidityScore,
			report.FeasibilityScore, report.OverallScore,
			string(sources), fmtTime(v.CreatedAt),
		); err != nil {
			return fmt.Errorf("storage: insert validation: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE ideas SET status = ?, updated_at = ? WHERE id = ?`,
			string(model.StatusValidated), fmtTime(v.CreatedAt), ideaID,
		); err != nil {
			return fmt.Errorf("storage: mark idea validated: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.AIValidation{}, err
	}
	return v, nil
}

// LatestValidation returns the most recent validation for an idea, or
// ErrNotFound when the idea has never been validated.
func (s *Store) LatestValidation(ctx context.Context, ideaID string) (model.AIValidation, error) {
	var (
		v               model.AIValidation
		competitors     string
		recommendations string
		sources         string
		createdAt       string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, idea_id, market_analysis, competitor_analysis, technical_feasibility,
			recommendations, desirability_score, validity_score, feasibility_score,
			overall_score, sources, created_at
		 FROM ai_validations WHERE idea_id = ? ORDER BY created_at DESC LIMIT 1`, ideaID,
	).Scan(
		&v.ID, &v.IdeaID, &v.MarketAnalysis, &competitors, &v.TechnicalFeasibility,
		&recommendations, &v.DesirabilityScore, &v.ValidityScore, &v.FeasibilityScore,
		&v.OverallScore, &sources, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AIValidation{}, ErrNotFound
	}
	if err != nil {
		return model.AIValidation{}, fmt.Errorf("storage: latest validation: %w", err)
	}

	v.CreatedAt = parseTime(createdAt)
	if err := json.Unmarshal([]byte(competitors), &v.CompetitorAnalysis); err != nil {
		return model.AIValidation{}, fmt.Errorf("storage: decode competitor analysis: %w", err)
	}
	if err := json.Unmarshal([]byte(recommendations), &v.Recommendations); err != nil {
		return model.AIValidation{}, fmt.Errorf("storage: decode recommendations: %w", err)
	}
	if err := json.Unmarshal([]byte(sources), &v.Sources); err != nil {
		return model.AIValidation{}, fmt.Errorf("storage: decode sources: %w", err)
	}
	return v, nil
}

func marshalList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

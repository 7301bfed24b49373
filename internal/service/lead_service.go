package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jxdata/portal/internal/config"
	"github.com/jxdata/portal/internal/model"
	"github.com/jxdata/portal/internal/quiz"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LeadService accepts consultation requests and queues them for persistence.
type LeadService struct {
	rdb         *redis.Client
	quizService *QuizService
	log         zerolog.Logger
	now         func() time.Time
}

func NewLeadService(rdb *redis.Client, quizService *QuizService, log zerolog.Logger) *LeadService {
	return &LeadService{
		rdb:         rdb,
		quizService: quizService,
		log:         log.With().Str("component", "lead_service").Logger(),
		now:         time.Now,
	}
}

// Submit builds a lead from req, attaches the visitor's quiz recommendations
// when the quiz is completed, and pushes it onto the persistence queue.
func (s *LeadService) Submit(ctx context.Context, visitorID string, req *model.CreateLeadRequest) (*model.Lead, error) {
	lead := &model.Lead{
		ID:              uuid.New(),
		VisitorID:       visitorID,
		Name:            strings.TrimSpace(req.Name),
		Company:         strings.TrimSpace(req.Company),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		Message:         strings.TrimSpace(req.Message),
		Recommendations: []string{},
		CreatedAt:       s.now().UTC(),
	}

	recs, err := s.quizService.Recommendations(ctx, visitorID)
	switch {
	case err == nil:
		for _, r := range recs {
			lead.Recommendations = append(lead.Recommendations, r.Label)
		}
	case errors.Is(err, quiz.ErrNotCompleted):
	default:
		// The lead is still worth keeping without recommendations.
		s.log.Warn().Err(err).Str("visitor_id", visitorID).Msg("Failed to load quiz recommendations for lead")
	}

	payload, err := json.Marshal(lead)
	if err != nil {
		return nil, fmt.Errorf("encode lead: %w", err)
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistLeadsQueue, payload).Err(); err != nil {
		s.log.Error().Err(err).Str("lead_id", lead.ID.String()).Msg("Failed to queue lead")
		return nil, fmt.Errorf("queue lead: %w", err)
	}

	s.log.Info().
		Str("lead_id", lead.ID.String()).
		Strs("recommendations", lead.Recommendations).
		Msg("Lead queued")

	return lead, nil
}

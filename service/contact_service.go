package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"sparta-mortgage/domain"
	"sparta-mortgage/repository"
)

var ErrMissingContactFields = errors.New("name and email are required")

type ContactService struct {
	repo           repository.LeadRepository
	publisher      repository.LeadPublisher
	publishTimeout time.Duration
	logger         *slog.Logger
	now            func() time.Time
	newID          func() string
}

// NewContactService creates a ContactService that records every lead in repo
// and forwards it to publisher.
func NewContactService(
	repo repository.LeadRepository,
	publisher repository.LeadPublisher,
	logger *slog.Logger,
) *ContactService {
	return &ContactService{
		repo:           repo,
		publisher:      publisher,
		publishTimeout: LeadPublishTimeout,
		logger:         logger,
		now:            time.Now,
		newID:          func() string { return "LEAD_" + uuid.NewString() },
	}
}

// Submit validates a contact submission and turns it into a lead.
func (s *ContactService) Submit(ctx context.Context, sub domain.ContactSubmission) (domain.Lead, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	if sub.Name == "" || sub.Email == "" {
		return domain.Lead{}, ErrMissingContactFields
	}
	if sub.PreferredContact != "phone" {
		sub.PreferredContact = "email"
	}

	lead := domain.Lead{
		ID:         s.newID(),
		Submission: sub,
		ReceivedAt: s.now().UTC(),
	}

	s.logger.Info("contact form submission",
		slog.String("lead_id", lead.ID),
		slog.Group("visitor",
			slog.String("name", sub.Name),
			slog.String("email", sub.Email),
			slog.String("phone", sub.Phone),
			slog.String("company", sub.Company),
		),
		slog.String("message", sub.Message),
		slog.String("preferred_contact", sub.PreferredContact),
		slog.Int("chatbot_messages", len(sub.ChatbotContext)),
		slog.Time("timestamp", lead.ReceivedAt),
	)

	// Saving and publishing are best effort; the visitor still gets a lead id.
	if err := s.repo.Save(ctx, lead); err != nil {
		s.logger.Warn("failed to save lead", "lead_id", lead.ID, "error", err)
	}
	publishCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(publishCtx, lead); err != nil {
		s.logger.Warn("failed to publish lead", "lead_id", lead.ID, "error", err)
	}

	return lead, nil
}

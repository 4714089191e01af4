// internal/service/lead/lead.go
package lead

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/lead"
	xerrors "fieldserve-backend/internal/pkg/errors"
)

type LeadStore interface {
	Create(ctx context.Context, l *lead.Lead) error
	List(ctx context.Context, status string, page, limit int) ([]lead.Lead, error)
}

type LeadService struct {
	leads  LeadStore
	logger *zap.Logger
}

func NewLeadService(leads LeadStore, logger *zap.Logger) *LeadService {
	return &LeadService{leads: leads, logger: logger}
}

func (s *LeadService) CreateLead(ctx context.Context, req *lead.CreateLeadRequest) (*lead.Lead, error) {
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Phone) == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "name and phone are required")
	}

	l := &lead.Lead{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
		Status:   lead.StatusNew,
	}
	if req.Source != "" {
		l.Source = sql.NullString{String: req.Source, Valid: true}
	}
	if req.Notes != "" {
		l.Notes = sql.NullString{String: req.Notes, Valid: true}
	}

	if err := s.leads.Create(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info("lead created", zap.Int64("lead_id", l.ID))
	return l, nil
}

func (s *LeadService) ListLeads(ctx context.Context, status string, page, limit int) ([]lead.Lead, error) {
	return s.leads.List(ctx, status, page, limit)
}

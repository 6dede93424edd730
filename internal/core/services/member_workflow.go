package services

import (
	"context"
	"errors"
	"log"

	"anpere-portal/internal/adapters/persistence/models"
	"anpere-portal/internal/core/domain"
	"anpere-portal/internal/pkg/metrics"

	"gorm.io/gorm"
)

// Status workflow: pending is the initial state, active and inactive are
// reachable from it and from each other. There is no terminal state and an
// admin may move status freely. Each transition is one UPDATE of status and
// updated_at against the store's current row; the engine keeps no state
// between calls, so concurrent conflicting transitions resolve last-write-wins.

// WorkflowAction names the transitions exposed as first-class actions
type WorkflowAction string

const (
	ActionApprove    WorkflowAction = "approve"
	ActionReject     WorkflowAction = "reject"
	ActionDeactivate WorkflowAction = "deactivate"
	ActionReactivate WorkflowAction = "reactivate"
)

// target returns the status the action moves the member to
func (a WorkflowAction) target() domain.MemberStatus {
	switch a {
	case ActionApprove, ActionReactivate:
		return domain.StatusActive
	default:
		return domain.StatusInactive
	}
}

// transition applies an action and reloads the member
func (s *MemberService) transition(ctx context.Context, id uint, action WorkflowAction) (*models.Member, error) {
	err := s.memberRepo.UpdateStatus(ctx, id, string(action.target()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, &domain.StorageError{Op: "update member status", Err: err}
	}

	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(action)).Inc()
	log.Printf("🔄 Member %s: %s -> status %s", member.MemberNumber, action, member.Status)
	return member, nil
}

// Approve moves a member to active. When sendEmail is set the applicant is
// notified by mail; the dispatch is best-effort and its failure never
// revokes the already-committed status update.
func (s *MemberService) Approve(ctx context.Context, id uint, sendEmail bool) (*models.Member, error) {
	member, err := s.transition(ctx, id, ActionApprove)
	if err != nil {
		return nil, err
	}

	if sendEmail && s.mailService != nil {
		s.mailService.SendApprovalNotice(member)
	}
	return member, nil
}

// Reject moves a member to inactive. No mail is sent.
func (s *MemberService) Reject(ctx context.Context, id uint) (*models.Member, error) {
	return s.transition(ctx, id, ActionReject)
}

// Deactivate moves an active member to inactive
func (s *MemberService) Deactivate(ctx context.Context, id uint) (*models.Member, error) {
	return s.transition(ctx, id, ActionDeactivate)
}

// Reactivate moves an inactive member back to active
func (s *MemberService) Reactivate(ctx context.Context, id uint) (*models.Member, error) {
	return s.transition(ctx, id, ActionReactivate)
}

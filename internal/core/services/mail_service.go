package services

import (
	"fmt"
	"log"
	"time"

	"anpere-portal/internal/adapters/persistence/models"
	"anpere-portal/internal/pkg/metrics"

	"github.com/sony/gobreaker"
)

// MailSender sends a single HTML mail. Satisfied by email.Client.
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

// MailService dispatches applicant-facing notices. Every send is
// best-effort: failures are logged and counted, never propagated, so the
// status update that requested the mail always stands.
type MailService struct {
	sender  MailSender
	breaker *gobreaker.CircuitBreaker
	orgName string
}

// NewMailService creates a mail service. A nil sender disables dispatch.
func NewMailService(sender MailSender, orgName string) *MailService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "SMTP",
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     time.Second * 30,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Open circuit after 3 consecutive failures
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("⚠️ Circuit Breaker %s: %s -> %s", name, from, to)
		},
	})

	return &MailService{
		sender:  sender,
		breaker: breaker,
		orgName: orgName,
	}
}

// SendApprovalNotice mails the applicant that their membership is active
func (s *MailService) SendApprovalNotice(member *models.Member) {
	if s.sender == nil || member.Email == "" {
		return
	}

	subject := fmt.Sprintf("%s - Inscrição aprovada", s.orgName)
	body := s.approvalBody(member)

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.sender.Send(member.Email, subject, body)
	})
	if err != nil {
		metrics.MailsTotal.WithLabelValues("failure").Inc()
		log.Printf("⚠️ Approval mail to %s failed (member %s): %v", member.Email, member.MemberNumber, err)
		return
	}

	metrics.MailsTotal.WithLabelValues("success").Inc()
	log.Printf("✉️ Approval mail sent to %s (member %s)", member.Email, member.MemberNumber)
}

// approvalBody renders the Portuguese HTML notice
func (s *MailService) approvalBody(member *models.Member) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>%s</h2>
  <p>Caro(a) %s,</p>
  <p>A sua inscrição foi aprovada. O seu número de membro é <strong>%s</strong>.</p>
  <p>Bem-vindo(a) à associação.</p>
  <p>Atenciosamente,<br>%s</p>
</body>
</html>`,
		s.orgName,
		member.FullName,
		member.MemberNumber,
		s.orgName,
	)
}

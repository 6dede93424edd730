package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the member lifecycle and its side channels.
var (
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "anpere_registrations_total",
		Help: "Public member registrations accepted",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anpere_status_transitions_total",
		Help: "Member status transitions by action",
	}, []string{"action"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anpere_notifications_total",
		Help: "Internal notifications emitted by type",
	}, []string{"type"})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "anpere_notification_failures_total",
		Help: "Notification emissions that failed (best-effort, swallowed)",
	})

	DocumentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anpere_documents_generated_total",
		Help: "PDF documents generated by kind",
	}, []string{"kind"})

	MailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anpere_mails_total",
		Help: "Outbound mails by result",
	}, []string{"result"})
)

package replicate

// WebhookEventType names a lifecycle event delivered to a prediction or
// training webhook. This package only defines the event names used in
// webhook_events_filter; receiving and verifying webhook deliveries is the
// embedding application's concern.
type WebhookEventType string

const (
	// WebhookEventStart fires once when the run starts.
	WebhookEventStart WebhookEventType = "start"

	// WebhookEventOutput fires each time the run produces output.
	WebhookEventOutput WebhookEventType = "output"

	// WebhookEventLogs fires each time the run produces log lines.
	WebhookEventLogs WebhookEventType = "logs"

	// WebhookEventCompleted fires once when the run reaches a terminal
	// status.
	WebhookEventCompleted WebhookEventType = "completed"
)

// AllWebhookEvents lists every deliverable event type.
func AllWebhookEvents() []WebhookEventType {
	return []WebhookEventType{
		WebhookEventStart,
		WebhookEventOutput,
		WebhookEventLogs,
		WebhookEventCompleted,
	}
}

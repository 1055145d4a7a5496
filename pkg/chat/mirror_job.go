package chat

// MirrorJob is the JSON payload put on the RabbitMQ queue when a user's
// profile must be replicated to the chat provider. The mirror is best-effort:
// producers publish fire-and-forget, the worker retries via requeue.
type MirrorJob struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`
}

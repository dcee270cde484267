package notifier

import (
	"sync"

	"pbf-marketplace/internal/models"
)

// Outbox records messages produced in simulated mode.
type Outbox struct {
	mu       sync.Mutex
	messages []models.Message
}

func (o *Outbox) add(msg models.Message) {
	o.mu.Lock()
	o.messages = append(o.messages, msg)
	o.mu.Unlock()
}

// Messages returns a snapshot in recording order.
func (o *Outbox) Messages() []models.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.Message, len(o.messages))
	copy(out, o.messages)
	return out
}

func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.messages)
}

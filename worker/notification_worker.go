package worker

import (
	"context"
	"denuncias/metrics"
	"denuncias/models"
	"denuncias/notification"
	"log/slog"
	"sync"
	"time"
)

// sendTimeout bounds a single delivery.
const sendTimeout = 30 * time.Second

// MailWorker is a background worker that delivers notifications queued after commit
type MailWorker struct {
	sender  notification.Sender
	log     *slog.Logger
	metrics *metrics.Metrics
	queue   chan *models.Notification

	mu      sync.Mutex
	running bool
	closed  bool
	done    chan struct{}
}

// NewMailWorker creates a new mail worker with a queue of the given capacity
func NewMailWorker(sender notification.Sender, queueSize int, log *slog.Logger, m *metrics.Metrics) *MailWorker {
	if queueSize <= 0 {
		queueSize = 100
	}
	return &MailWorker{
		sender:  sender,
		log:     log.With("component", "mail_worker"),
		metrics: m,
		queue:   make(chan *models.Notification, queueSize),
		done:    make(chan struct{}),
	}
}

// Start starts the delivery goroutine
func (w *MailWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.closed {
		w.log.Warn("mail worker is already running or stopped")
		return
	}
	w.running = true
	w.log.Info("mail worker started", "queue_size", cap(w.queue))
	go w.run()
}

// Enqueue queues n without blocking. It returns false when the queue is full or the worker is stopped.
func (w *MailWorker) Enqueue(n *models.Notification) bool {
	if n == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.drop(n, "worker stopped")
		return false
	}
	select {
	case w.queue <- n:
		w.metrics.SetMailQueueDepth(len(w.queue))
		return true
	default:
		w.drop(n, "queue full")
		return false
	}
}

func (w *MailWorker) drop(n *models.Notification, reason string) {
	w.log.Warn("mail dropped", "reason", reason, "kind", n.Kind, "complaint_id", n.ComplaintID, "recipient", n.Recipient)
	w.metrics.MailOutcome(string(n.Kind), string(models.NotificationStatusDropped))
}

// Stop closes the queue and waits until every queued message has been attempted or ctx expires.
func (w *MailWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	running := w.running
	close(w.queue)
	w.mu.Unlock()

	if !running {
		return nil
	}
	w.log.Info("stopping mail worker, draining queue", "pending", len(w.queue))
	select {
	case <-w.done:
		w.log.Info("mail worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main worker loop
func (w *MailWorker) run() {
	defer close(w.done)
	for n := range w.queue {
		w.metrics.SetMailQueueDepth(len(w.queue))
		w.deliver(n)
	}
}

func (w *MailWorker) deliver(n *models.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	start := time.Now()
	if err := w.sender.Send(ctx, n); err != nil {
		w.log.Error("mail delivery failed", "kind", n.Kind, "complaint_id", n.ComplaintID, "recipient", n.Recipient, "error", err)
		w.metrics.MailOutcome(string(n.Kind), string(models.NotificationStatusFailed))
		return
	}
	w.log.Info("mail sent", "kind", n.Kind, "complaint_id", n.ComplaintID, "recipient", n.Recipient,
		"duration_ms", time.Since(start).Milliseconds())
	w.metrics.MailOutcome(string(n.Kind), string(models.NotificationStatusSent))
}

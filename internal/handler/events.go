package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
)

func statsCacheKey(kind string, date time.Time) string {
	return fmt.Sprintf("stats_%s_%s", kind, date.Format("2006-01-02"))
}

// publishScheduleChanged fans out "entries changed for date D" and drops the
// cached aggregates for that date. The event is a re-query trigger only;
// failures are logged, not surfaced, because the write itself already
// succeeded.
func (h *Handler) publishScheduleChanged(date time.Time) {
	event := domain.ScheduleChangedEvent{Date: date.Format("2006-01-02")}
	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("cannot marshal change event", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.amqpChannel.PublishWithContext(
		ctx,
		domain.ScheduleChangesExchange,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("cannot publish change event", "date", event.Date, "error", err)
	}

	keys := []string{statsCacheKey("available_now", date), statsCacheKey("histogram", date)}
	if err := h.redisClient.Del(ctx, keys...).Err(); err != nil {
		slog.Error("cannot invalidate stats cache", "date", event.Date, "error", err)
	}
}

func (h *Handler) queueMail(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.amqpChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

package impl

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"fenix/internal/domain/entity"
	"fenix/internal/domain/repository"
)

// orderRef is the short human-facing order reference used in notification
// copy: the first UUID group, uppercased.
func orderRef(id uuid.UUID) string {
	s := id.String()
	if i := strings.IndexByte(s, '-'); i > 0 {
		s = s[:i]
	}

	return strings.ToUpper(s)
}

// emitOrderNotification persists the bilingual notification for an order
// event inside the surrounding transaction. The unique constraint on
// (order, event) makes repeated emissions a no-op, so retried transitions
// never double-notify; eta_updated sits outside the constraint and notifies
// on every window change. The row also enters the email outbox, drained
// later by the mail worker.
func emitOrderNotification(ctx context.Context, factory repository.RepositoryFactory, customerID, orderID uuid.UUID, event entity.NotificationEvent) error {
	if event == "" {
		return nil
	}

	tpl := entity.RenderTemplate(event, orderRef(orderID))
	notification := &entity.Notification{
		UserID:        customerID,
		OrderID:       orderID,
		EventType:     event,
		SubjectES:     tpl.SubjectES,
		SubjectZhHans: tpl.SubjectZhHans,
		MessageES:     tpl.MessageES,
		MessageZhHans: tpl.MessageZhHans,
	}

	err := factory.NotificationRepo().Create(ctx, notification)
	if errors.Is(err, repository.ErrDuplicateNotification) {
		return nil
	}

	return err
}

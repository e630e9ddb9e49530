package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationEvent classifies customer-facing order notifications.
type NotificationEvent string

const (
	// EventOrderCreated fires when an order is placed.
	EventOrderCreated NotificationEvent = "order_created"
	// EventOrderConfirmed fires when staff confirms an order.
	EventOrderConfirmed NotificationEvent = "order_confirmed"
	// EventOrderOutForDelivery fires when the order leaves the warehouse.
	EventOrderOutForDelivery NotificationEvent = "order_out_for_delivery"
	// EventOrderDelivered fires when the order is delivered.
	EventOrderDelivered NotificationEvent = "order_delivered"
	// EventOrderCancelled fires when the order is cancelled.
	EventOrderCancelled NotificationEvent = "order_cancelled"
	// EventETAUpdated fires when the delivery window changes.
	EventETAUpdated NotificationEvent = "eta_updated"
	// EventOrderLate fires when an order slips past its ETA window.
	EventOrderLate NotificationEvent = "order_late"
)

// IsValid checks if the NotificationEvent is a valid value.
func (e NotificationEvent) IsValid() bool {
	switch e {
	case EventOrderCreated, EventOrderConfirmed, EventOrderOutForDelivery,
		EventOrderDelivered, EventOrderCancelled, EventETAUpdated, EventOrderLate:
		return true
	default:
		return false
	}
}

// NotificationTemplate holds the bilingual subject and body for one event.
type NotificationTemplate struct {
	SubjectES     string
	SubjectZhHans string
	MessageES     string
	MessageZhHans string
}

// defaultTemplates carries the canonical bilingual copy per event; the order
// number is interpolated at render time.
var defaultTemplates = map[NotificationEvent]NotificationTemplate{
	EventOrderCreated: {
		SubjectES:     "Pedido %s creado",
		SubjectZhHans: "订单 %s 已创建",
		MessageES:     "Su pedido %s ha sido registrado correctamente. Recibirá actualizaciones por email.",
		MessageZhHans: "您的订单 %s 已成功登记。您将收到电子邮件更新。",
	},
	EventOrderConfirmed: {
		SubjectES:     "Pedido %s confirmado",
		SubjectZhHans: "订单 %s 已确认",
		MessageES:     "Su pedido %s ha sido confirmado y está en proceso.",
		MessageZhHans: "您的订单 %s 已确认，正在处理中。",
	},
	EventOrderOutForDelivery: {
		SubjectES:     "Pedido %s en reparto",
		SubjectZhHans: "订单 %s 配送中",
		MessageES:     "Su pedido %s está en camino.",
		MessageZhHans: "您的订单 %s 正在配送中。",
	},
	EventOrderDelivered: {
		SubjectES:     "Pedido %s entregado",
		SubjectZhHans: "订单 %s 已送达",
		MessageES:     "Su pedido %s ha sido entregado. Gracias por su confianza.",
		MessageZhHans: "您的订单 %s 已送达。感谢您的信任。",
	},
	EventOrderCancelled: {
		SubjectES:     "Pedido %s cancelado",
		SubjectZhHans: "订单 %s 已取消",
		MessageES:     "Su pedido %s ha sido cancelado. Si tiene dudas, contacte con nosotros.",
		MessageZhHans: "您的订单 %s 已取消。如有疑问，请联系我们。",
	},
	EventETAUpdated: {
		SubjectES:     "Pedido %s: ETA actualizada",
		SubjectZhHans: "订单 %s：预计送达时间已更新",
		MessageES:     "Se ha actualizado la ventana de entrega del pedido %s.",
		MessageZhHans: "订单 %s 的预计送达时间已更新。",
	},
	EventOrderLate: {
		SubjectES:     "Pedido %s: retraso",
		SubjectZhHans: "订单 %s：延迟",
		MessageES:     "Su pedido %s podría sufrir un retraso. Disculpe las molestias.",
		MessageZhHans: "您的订单 %s 可能延迟。给您带来不便，敬请谅解。",
	},
}

// RenderTemplate fills the default bilingual template for an event with the
// short order reference.
func RenderTemplate(event NotificationEvent, orderRef string) NotificationTemplate {
	tpl, ok := defaultTemplates[event]
	if !ok {
		return NotificationTemplate{
			SubjectES:     "Notificación",
			SubjectZhHans: "通知",
		}
	}

	return NotificationTemplate{
		SubjectES:     fmt.Sprintf(tpl.SubjectES, orderRef),
		SubjectZhHans: fmt.Sprintf(tpl.SubjectZhHans, orderRef),
		MessageES:     fmt.Sprintf(tpl.MessageES, orderRef),
		MessageZhHans: fmt.Sprintf(tpl.MessageZhHans, orderRef),
	}
}

// Notification is a persisted customer notification. It doubles as the email
// outbox row: the mail worker picks up rows with EmailSent=false, so an order
// state change is durable even when SMTP is down.
type Notification struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	OrderID       uuid.UUID
	EventType     NotificationEvent
	SubjectES     string
	SubjectZhHans string
	MessageES     string
	MessageZhHans string
	IsRead        bool

	EmailSent     bool
	EmailAttempts int
	LastEmailErr  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Localized returns the subject and body in the resolved locale.
func (n *Notification) Localized(lang Language) (subject, body string) {
	if lang == LanguageZhHans {
		return n.SubjectZhHans, n.MessageZhHans
	}

	return n.SubjectES, n.MessageES
}

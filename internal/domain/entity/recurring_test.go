package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequency_Next(t *testing.T) {
	from := time.Date(2026, time.January, 31, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.February, 1, 8, 0, 0, 0, time.UTC), FrequencyDaily.Next(from))
	assert.Equal(t, time.Date(2026, time.February, 7, 8, 0, 0, 0, time.UTC), FrequencyWeekly.Next(from))
	// AddDate normalization: Jan 31 + 1 month rolls over to Mar 3.
	assert.Equal(t, from.AddDate(0, 1, 0), FrequencyMonthly.Next(from))
}

func TestScheduleNextRun(t *testing.T) {
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	r := &RecurringOrder{IsActive: true, Frequency: FrequencyWeekly}

	r.ScheduleNextRun(now)

	require.NotNil(t, r.NextRunAt)
	assert.Equal(t, now.AddDate(0, 0, 7), *r.NextRunAt)
	assert.True(t, r.IsActive)
}

func TestScheduleNextRun_PastEndDateDeactivates(t *testing.T) {
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	end := now.AddDate(0, 0, 3)
	r := &RecurringOrder{IsActive: true, Frequency: FrequencyWeekly, EndDate: &end}

	r.ScheduleNextRun(now)

	assert.Nil(t, r.NextRunAt)
	assert.False(t, r.IsActive)
}

func TestRenderTemplate(t *testing.T) {
	tpl := RenderTemplate(EventOrderDelivered, "#42")

	assert.Equal(t, "Pedido #42 entregado", tpl.SubjectES)
	assert.Equal(t, "订单 #42 已送达", tpl.SubjectZhHans)
	assert.Contains(t, tpl.MessageES, "#42")

	unknown := RenderTemplate(NotificationEvent("bogus"), "#42")
	assert.Equal(t, "Notificación", unknown.SubjectES)
}

func TestNotification_Localized(t *testing.T) {
	n := &Notification{
		SubjectES:     "Pedido #7 creado",
		SubjectZhHans: "订单 #7 已创建",
		MessageES:     "cuerpo",
		MessageZhHans: "正文",
	}

	subject, body := n.Localized(LanguageES)
	assert.Equal(t, "Pedido #7 creado", subject)
	assert.Equal(t, "cuerpo", body)

	subject, body = n.Localized(LanguageZhHans)
	assert.Equal(t, "订单 #7 已创建", subject)
	assert.Equal(t, "正文", body)
}

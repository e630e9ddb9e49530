package entity

import "time"

// PlatformSettings is the single-row global configuration of the platform.
type PlatformSettings struct {
	DefaultLanguage            Language
	EmailFrom                  string
	EmailFromName              string
	OrderNotificationEmail     string
	DefaultDeliveryWindowHours int
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// FromHeader renders the RFC 5322 From value used for outbound email.
func (s *PlatformSettings) FromHeader() string {
	if s.EmailFromName == "" {
		return s.EmailFrom
	}

	return s.EmailFromName + " <" + s.EmailFrom + ">"
}

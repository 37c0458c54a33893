package notificationlogRepo

import "salonnotify/models"

// NotificationLogRepository persists one record per attempted send.
type NotificationLogRepository interface {
	Insert(entry *models.NotificationLog) error
}

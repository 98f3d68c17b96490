package services

import (
	"fmt"

	"storefront/internal/models"
	"storefront/pkg/notifier"
)

// NotificationService sends customer-facing order notifications through the
// gateway. Fire-and-forget: order creation and status changes never fail
// because a notification did.
type NotificationService interface {
	NotifyOrderCreated(order *models.Order) error
	NotifyOrderStatus(order *models.Order, oldStatus string) error
}

type notificationService struct {
	client *notifier.Client
}

func NewNotificationService(client *notifier.Client) NotificationService {
	return &notificationService{client: client}
}

func (s *notificationService) NotifyOrderCreated(order *models.Order) error {
	if order.UserID == nil {
		// Guest checkout: confirmation goes out by email elsewhere.
		return nil
	}

	message := fmt.Sprintf("🛒 Your order %s has been received. Total: %s", order.OrderNumber, order.Total.StringFixed(2))
	_, err := s.client.Send(notifier.SendRequest{
		UserID:  *order.UserID,
		Type:    "order_created",
		Title:   "Order received",
		Message: message,
		Data: map[string]string{
			"order_number": order.OrderNumber,
			"total":        order.Total.StringFixed(2),
		},
	})
	return err
}

func (s *notificationService) NotifyOrderStatus(order *models.Order, oldStatus string) error {
	if order.UserID == nil {
		return nil
	}

	message := fmt.Sprintf("📦 Your order %s is now %s", order.OrderNumber, order.Status)
	_, err := s.client.Send(notifier.SendRequest{
		UserID:  *order.UserID,
		Type:    "order_status",
		Title:   "Order update",
		Message: message,
		Data: map[string]string{
			"order_number": order.OrderNumber,
			"old_status":   oldStatus,
			"new_status":   order.Status,
		},
	})
	return err
}

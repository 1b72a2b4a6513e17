package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/catalog"
	"github.com/example/stylehub/internal/models"
	"github.com/example/stylehub/internal/services"
	"github.com/example/stylehub/internal/utils"
)

// OrderNotifier is told about every placed order.
type OrderNotifier interface {
	NotifyNewOrder(ctx context.Context, order models.Order) error
}

// OrderHandler manages checkout and order history.
type OrderHandler struct {
	db       *gorm.DB
	notifier OrderNotifier
	log      *slog.Logger
}

// NewOrderHandler constructs OrderHandler. A nil notifier disables notifications.
func NewOrderHandler(db *gorm.DB, notifier OrderNotifier) *OrderHandler {
	return &OrderHandler{
		db:       db,
		notifier: notifier,
		log:      slog.Default().With("component", "orders"),
	}
}

type createOrderRequest struct {
	SessionID       string `json:"session_id" validate:"required"`
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
}

// CreateOrder turns the session cart into an order. The order insert, the cart
// clear and the purchase counters commit together.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}

	order := models.Order{
		SessionID:       req.SessionID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Status:          models.OrderStatusPending,
		TotalAmount:     decimal.Zero,
	}

	if err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var cart []models.CartItem
		if err := tx.Where("session_id = ?", req.SessionID).
			Order("created_at ASC").Order("id ASC").
			Find(&cart).Error; err != nil {
			return err
		}
		if len(cart) == 0 {
			return badRequest("Cart is empty")
		}

		for _, line := range cart {
			var product models.Product
			err := tx.First(&product, "id = ?", line.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.log.Warn("skipping cart line for missing product", "session_id", req.SessionID, "product_id", line.ProductID)
				continue
			}
			if err != nil {
				return err
			}

			total := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Size:        line.Size,
				Color:       line.Color,
				Quantity:    line.Quantity,
				Price:       product.Price,
				Total:       total,
			})
			order.TotalAmount = order.TotalAmount.Add(total)
		}
		if len(order.Items) == 0 {
			return badRequest("Cart has no available products")
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", req.SessionID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := catalog.Bump(tx, item.ProductID, catalog.PurchaseCount, item.Quantity); err != nil {
				return err
			}
			if err := tx.Create(&models.UserActivity{
				SessionID:      req.SessionID,
				ProductID:      item.ProductID,
				ActivityType:   models.ActivityPurchase,
				AdditionalData: map[string]interface{}{"order_id": order.ID, "quantity": item.Quantity},
			}).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	h.log.Info("order placed", "order_id", order.ID, "items", len(order.Items), "total", order.TotalAmount.StringFixed(2))
	if h.notifier != nil {
		go h.notify(order)
	}

	return c.JSON(order)
}

func (h *OrderHandler) notify(order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := h.notifier.NotifyNewOrder(ctx, order); err != nil {
		h.log.Error("order notification failed", "order_id", order.ID, "error", err)
		return
	}
	h.log.Debug("order notification sent", "order_id", order.ID)
}

// ListOrders returns a session's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders := []models.Order{}
	if err := h.db.WithContext(c.UserContext()).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("session_id = ?", c.Params("session_id")).
		Order("created_at DESC").Order("id ASC").
		Limit(utils.SessionListWindow.Max).
		Find(&orders).Error; err != nil {
		return err
	}
	return c.JSON(orders)
}

var _ OrderNotifier = (*services.TelegramService)(nil)

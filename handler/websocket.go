package handler

import (
	"biryani_club/model"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	clients = make(map[uint]map[*websocket.Conn]bool)
	mu      sync.Mutex
)

func orderChannel(customerId uint) string {
	return fmt.Sprintf("orders:%d", customerId)
}

// OrderStatusSocket streams live status changes for one customer's orders.
// Fan-out goes through Redis pub/sub so every instance sees the update.
func OrderStatusSocket(c *websocket.Conn) {
	customerIdStr := c.Params("customerId")
	id64, _ := strconv.ParseUint(customerIdStr, 10, 64)
	customerId := uint(id64)

	defer func() {
		mu.Lock()
		if clients[customerId] != nil {
			delete(clients[customerId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	if clients[customerId] == nil {
		clients[customerId] = make(map[*websocket.Conn]bool)
	}
	clients[customerId][c] = true
	mu.Unlock()

	pubsub := redisClient.Subscribe(
		context.Background(),
		orderChannel(customerId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients[customerId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients[customerId], conn)
			}
		}
		mu.Unlock()
	}
}

// BroadcastOrderStatus publishes an order's current state to its owner's
// channel. Guest orders have no channel and are skipped.
func BroadcastOrderStatus(order *model.Order) {
	if order == nil || order.CustomerId == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"orderCode":         order.PublicCode,
		"status":            order.Status,
		"estimatedDelivery": order.EstimatedDelivery,
		"total":             order.Total,
	})
	if err != nil {
		return
	}

	if err := redisClient.Publish(
		context.Background(),
		orderChannel(*order.CustomerId),
		payload,
	).Err(); err != nil {
		log.Printf("order status publish failed: code=%s err=%v", order.PublicCode, err)
	}
}

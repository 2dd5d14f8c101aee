package request

import (
	"strings"

	"sisgenius/internal/domain/entities"
)

// StatusRequest changes the lifecycle state of a committed order.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r StatusRequest) ResolveStatus() (entities.OrderStatus, bool) {
	status := entities.OrderStatus(strings.TrimSpace(strings.ToLower(r.Status)))
	if !status.Valid() {
		return "", false
	}
	return status, true
}

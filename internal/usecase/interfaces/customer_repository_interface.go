package interfaces

import (
	"context"
	"sisgenius/internal/domain/entities"
)

// ICustomerRepository exposes the read-only customer lookup the status
// machine needs when offering a notification. The customer register itself
// is owned by another part of the console.

type ICustomerRepository interface {
	GetByID(ctx context.Context, id string) (entities.Customer, error)
}

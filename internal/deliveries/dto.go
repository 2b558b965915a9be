package deliveries

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
)

// DeliveryInfo is the read model returned to controllers.
type DeliveryInfo struct {
	ID               uuid.UUID            `json:"id"`
	OrderLineID      uuid.UUID            `json:"orderLineId"`
	RecipientName    string               `json:"recipientName"`
	RecipientContact string               `json:"recipientContact"`
	Address          string               `json:"address"`
	Status           enums.DeliveryStatus `json:"status"`
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

package mappers

import (
	"strings"

	"github.com/chilly266futon/futuresBot/internal/domain"
)

func OrderStatusFromWire(s string) domain.OrderStatus {
	return domain.OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
}

package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// StandardOrderPrefix is the order number prefix for catalog orders
	StandardOrderPrefix = "ORD"
	// CustomOrderPrefix is the order number prefix for custom tailoring orders
	CustomOrderPrefix = "CUST"

	orderNumberSuffixLen = 9
)

// GenerateOrderNumber builds a human-readable order number of the form
// PREFIX-<unix-ms>-<random suffix>. The suffix makes collisions unlikely but
// uniqueness is ultimately enforced by the order_number unique index.
func GenerateOrderNumber(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:orderNumberSuffixLen]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}

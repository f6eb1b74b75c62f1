package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber builds a human-readable unique order number,
// e.g. BTT-482913-A1B2C3. Uniqueness is enforced by the orders table.
func GenerateOrderNumber() string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	rand := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("BTT-%s-%s", ts[len(ts)-6:], rand)
}

// GenerateSKU derives a catalog SKU from the product name and category.
func GenerateSKU(name, category string) string {
	code := func(s string) string {
		s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))
		if len(s) > 3 {
			s = s[:3]
		}
		return s
	}
	rand := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return fmt.Sprintf("%s-%s-%s", code(name), code(category), rand)
}

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 生成 32 位主键（uuid 去横线）
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

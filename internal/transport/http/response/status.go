package response

import (
	"net/http"

	"event-booking-api/internal/domain"
)

// kindStatus 集中管理 错误分类 - HTTP 状态；Conflict 对前端按 400 暴露（沿用现有 API 约定）
var kindStatus = map[domain.Kind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusBadRequest,
	domain.KindInternal:     http.StatusInternalServerError,
}

func StatusOf(err error) int {
	if s, ok := kindStatus[domain.KindOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

package voices

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/avatar-smoke/internal/model/avatar"
	"github.com/zhouzirui/avatar-smoke/pkg/utils"
)

// Handler 声音列表的HTTP处理器
type Handler struct {
	voices avatar.VoiceStore
}

// New 创建声音处理器
func New(voices avatar.VoiceStore) *Handler {
	return &Handler{voices: voices}
}

// RegisterRoutes 注册声音相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/voices", h.handleListVoices)
}

// handleListVoices 列出所有可用声音
func (h *Handler) handleListVoices(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.voices.List())
}

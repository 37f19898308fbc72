package avatar

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	model "github.com/zhouzirui/avatar-smoke/internal/model/avatar"
	"github.com/zhouzirui/avatar-smoke/pkg/utils"
)

// Responder 抽象 /tts 的回复生成，便于测试与替换实现
type Responder interface {
	Respond(ctx context.Context, message string) (model.Response, bool)
}

// Handler 头像回复的HTTP处理器
type Handler struct {
	responder Responder
}

// New 创建头像处理器
func New(responder Responder) *Handler {
	return &Handler{responder: responder}
}

// RegisterRoutes 注册头像相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/tts", h.handleTTS)
}

// handleTTS 根据用户消息返回带表情与动作的消息列表
func (h *Handler) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req model.TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, cached := h.responder.Respond(r.Context(), req.Message)
	log.Printf("[stub] tts request_id=%s message=%q messages=%d cached=%t",
		middleware.GetReqID(r.Context()), req.Message, len(resp.Messages), cached)

	utils.RespondJSON(w, http.StatusOK, resp)
}

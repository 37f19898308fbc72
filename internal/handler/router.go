package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/avatar-smoke/internal/handler/avatar"
	"github.com/zhouzirui/avatar-smoke/internal/handler/voices"
	middlewarePkg "github.com/zhouzirui/avatar-smoke/internal/middleware"
	avatarModel "github.com/zhouzirui/avatar-smoke/internal/model/avatar"
	"github.com/zhouzirui/avatar-smoke/pkg/utils"
)

// NewRouter wires the stub backend routes. Paths sit at the root, matching the
// contract the smoke runner exercises.
func NewRouter(voiceStore avatarModel.VoiceStore, responder avatar.Responder) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondText(w, http.StatusOK, "Avatar Backend is running")
	})

	voices.New(voiceStore).RegisterRoutes(r)
	avatar.New(responder).RegisterRoutes(r)

	return r
}

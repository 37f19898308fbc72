package avatar

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/zhouzirui/avatar-smoke/internal/analysis/expression"
	model "github.com/zhouzirui/avatar-smoke/internal/model/avatar"
)

// Config 控制桩后端的行为。
type Config struct {
	CacheTTL  time.Duration
	HasAPIKey bool
}

// Service answers /tts deterministically so smoke runs have something stable to hit.
type Service struct {
	cfg   Config
	cache *Cache
}

// NewService creates the stub responder.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg, cache: NewCache(cfg.CacheTTL)}
}

// Cache exposes the response cache so the server can sweep it.
func (s *Service) Cache() *Cache {
	return s.cache
}

// Respond returns the messages for one user message and whether they came from cache.
func (s *Service) Respond(_ context.Context, message string) (model.Response, bool) {
	key := CacheKey(message)
	if entry, ok := s.cache.Get(key); ok {
		log.Printf("[stub] returning cached response for %q", key)
		return entry.Response, true
	}

	resp := model.Response{Messages: s.generate(message)}
	s.cache.Put(key, resp)
	return resp, false
}

func (s *Service) generate(message string) []model.MessageUnit {
	if strings.TrimSpace(message) == "" {
		return IntroMessages()
	}
	if !s.cfg.HasAPIKey {
		return MissingKeyMessages()
	}

	decision := expression.Analyze(message)
	return []model.MessageUnit{{
		Text:             replyText(decision.Expression),
		FacialExpression: string(decision.Expression),
		Animation:        decision.Animation,
	}}
}

// CacheKey normalizes a message the same way for lookups and stores.
func CacheKey(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

// IntroMessages are returned for an empty message.
func IntroMessages() []model.MessageUnit {
	return []model.MessageUnit{
		{
			Text:             "Hello! I'm your AI assistant. What would you like to discuss today?",
			FacialExpression: string(expression.Smile),
			Animation:        expression.TalkingOne,
		},
		{
			Text:             "I can help with any topic - science, history, literature, mathematics, or anything else you're curious about.",
			FacialExpression: string(expression.Default),
			Animation:        expression.TalkingTwo,
		},
	}
}

// MissingKeyMessages are returned when the stub is told a key is required but has none.
func MissingKeyMessages() []model.MessageUnit {
	return []model.MessageUnit{
		{
			Text:             "Please add your API key to enable my full capabilities!",
			FacialExpression: string(expression.Angry),
			Animation:        expression.TalkingThree,
		},
		{
			Text:             "I need an API key to provide detailed responses on any topic!",
			FacialExpression: string(expression.Smile),
			Animation:        expression.AngryGesture,
		},
	}
}

var replies = map[expression.Label]string{
	expression.FunnyFace: "Why did the avatar cross the screen? To get to the other frame!",
	expression.Smile:     "That's lovely to hear! I'm happy to chat with you.",
	expression.Sad:       "I'm sorry you're feeling that way. I'm here if you want to talk about it.",
	expression.Angry:     "That does sound frustrating. Let's see what we can do about it.",
	expression.Surprised: "Wow, that really is something!",
	expression.Default:   "Good question. Let me walk you through it step by step.",
}

func replyText(label expression.Label) string {
	if text, ok := replies[label]; ok {
		return text
	}
	return replies[expression.Default]
}

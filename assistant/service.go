package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/config"
	"github.com/status-im/market-assistant/interfaces"
	"github.com/status-im/market-assistant/metrics"
	"github.com/status-im/market-assistant/models"
)

// Service answers natural-language questions about the market
type Service struct {
	classifier *Classifier
	responder  *Responder
	chats      interfaces.ChatRepository
	now        func() time.Time
}

// NewService builds the assistant. Chat exchanges are not recorded when chats is nil.
func NewService(market interfaces.MarketDataClient, repo interfaces.SnapshotRepository, chats interfaces.ChatRepository, cfg config.AssistantConfig) *Service {
	return &Service{
		classifier: NewClassifier(NewResolver(DefaultAliases), cfg),
		responder:  NewResponder(market, repo),
		chats:      chats,
		now:        time.Now,
	}
}

// Answer never fails: any fault while answering becomes a generic apology
func (s *Service) Answer(ctx context.Context, text string) (answer Answer) {
	start := time.Now()
	intent, params := IntentGeneral, Params{}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("intent", intent.String()).Msg("Assistant: recovered while answering")
			answer = errorAnswer(intent, params)
		}
		metrics.RecordAnswer(answer.Intent.String(), start)
	}()

	question := Normalize(text)
	intent, params = s.classifier.Classify(question)

	answer, err := s.responder.Respond(ctx, intent, params, question)
	if err != nil {
		log.Error().Err(err).Str("intent", intent.String()).Msg("Assistant: failed to answer")
		return errorAnswer(intent, params)
	}

	log.Debug().
		Str("intent", intent.String()).
		Str("coin", params.Coin).
		Dur("duration", time.Since(start)).
		Msg("Assistant: answered")
	return answer
}

// AnswerSession answers within a chat session and records the exchange in its history.
// A session ID is generated when empty.
func (s *Service) AnswerSession(ctx context.Context, sessionID, text string) SessionAnswer {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	asked := s.now().UTC()

	reply := SessionAnswer{
		Answer:      s.Answer(ctx, text),
		SessionID:   sessionID,
		MessageType: models.ChatMessageAssistant,
		Timestamp:   s.now().UTC(),
	}
	s.record(ctx, sessionID, text, asked, reply)
	return reply
}

// record stores the question and its answer. Failures only cost the history.
func (s *Service) record(ctx context.Context, sessionID, question string, asked time.Time, reply SessionAnswer) {
	if s.chats == nil {
		return
	}

	err := s.chats.AppendChatMessages(ctx, sessionID,
		models.ChatMessage{MessageType: models.ChatMessageUser, Content: question, Timestamp: asked},
		models.ChatMessage{MessageType: models.ChatMessageAssistant, Content: reply.Text, Timestamp: reply.Timestamp},
	)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("Assistant: failed to record chat exchange")
	}
}

func errorAnswer(intent Intent, params Params) Answer {
	return Answer{Text: msgProcessingError, Intent: intent, Params: params}
}

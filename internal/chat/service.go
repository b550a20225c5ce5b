package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lojachat/internal/model"
	"lojachat/internal/observability"
)

// Request is one customer message. History, when present, takes priority
// over the stored session.
type Request struct {
	Message   string
	History   []model.ChatMessage
	SessionID string
}

// Reply is the model answer plus the session it was recorded under.
type Reply struct {
	Text      string
	SessionID string
	Retrieval Retrieval
}

// Service answers customer messages from a read-only snapshot. It is the
// single entry point shared by the HTTP server and the CLI.
type Service struct {
	snapshot  *model.Snapshot
	llm       Generator
	sessions  HistoryStore
	storeName string
	logger    zerolog.Logger
}

// NewService wires the chat core. sessions may be nil.
func NewService(snapshot *model.Snapshot, llm Generator, sessions HistoryStore, storeName string, logger zerolog.Logger) *Service {
	return &Service{
		snapshot:  snapshot,
		llm:       llm,
		sessions:  sessions,
		storeName: storeName,
		logger:    logger,
	}
}

// Context returns the retrieval for message without calling the model.
func (s *Service) Context(message string) Retrieval {
	r := Retrieve(s.snapshot, message)
	recordRetrieval(r)
	return r
}

// Reply classifies the message, gathers context, and asks the model. Only
// model failures are returned as errors; missing data just yields an
// empty context.
func (s *Service) Reply(ctx context.Context, req Request) (Reply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return Reply{}, model.ErrEmptyMessage
	}

	sessionID := req.SessionID
	if s.sessions != nil && sessionID == "" && len(req.History) == 0 {
		sessionID = uuid.NewString()
	}
	logger := s.logger.With().Str("session_id", sessionID).Logger()

	history := req.History
	if len(history) == 0 && s.sessions != nil && sessionID != "" {
		stored, err := s.sessions.Get(ctx, sessionID)
		if err != nil {
			logger.Warn().Err(err).Msg("could not read session history")
		}
		history = stored
	}

	r := s.Context(req.Message)
	logger.Debug().
		Bool("product_intent", r.ProductIntent).
		Bool("policy_intent", r.PolicyIntent).
		Bool("greeting", r.Greeting).
		Strs("terms", r.Terms).
		Interface("max_price", r.Price.Max).
		Interface("min_price", r.Price.Min).
		Int("products", len(r.Products)).
		Int("policies", len(r.Policies)).
		Msg("context assembled")

	messages := BuildMessages(SystemPrompt(s.storeName, r.Context), history, req.Message)
	text, err := s.llm.Generate(ctx, messages)
	if err != nil {
		logger.Error().Err(err).Msg("model call failed")
		return Reply{}, err
	}

	if s.sessions != nil && sessionID != "" {
		err := s.sessions.Append(ctx, sessionID,
			model.ChatMessage{Role: model.RoleUser, Content: req.Message},
			model.ChatMessage{Role: model.RoleAssistant, Content: text},
		)
		if err != nil {
			logger.Warn().Err(err).Msg("could not save session history")
		}
	}

	return Reply{Text: text, SessionID: sessionID, Retrieval: r}, nil
}

func recordRetrieval(r Retrieval) {
	switch {
	case r.ProductIntent || r.PolicyIntent:
		if r.ProductIntent {
			observability.IntentsTotal.WithLabelValues("product").Inc()
			observability.RetrievedItems.WithLabelValues("products").Observe(float64(len(r.Products)))
		}
		if r.PolicyIntent {
			observability.IntentsTotal.WithLabelValues("policy").Inc()
			observability.RetrievedItems.WithLabelValues("policies").Observe(float64(len(r.Policies)))
		}
	case r.Greeting:
		observability.IntentsTotal.WithLabelValues("greeting").Inc()
	default:
		observability.IntentsTotal.WithLabelValues("none").Inc()
	}
}

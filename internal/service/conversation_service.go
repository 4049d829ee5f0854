package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"contech_bot/internal/config"
	"contech_bot/internal/geo"
	"contech_bot/internal/logger"
	"contech_bot/internal/metrics"
	"contech_bot/internal/model"

	"go.uber.org/zap"
)

// ErrPersistence marks a turn that failed because the store did. The
// conversation state is left as of the last successful write.
var ErrPersistence = errors.New("persistence failure")

const (
	jobsCommand  = "vagas"
	maxNameRunes = 255
	// stage label for turns where the sender had no record yet
	noUserStage = "NONE"
)

// Keyword matching is substring containment on the normalized body, so
// "vaga" also matches "vagas" or any longer text containing it.
var (
	workerKeywords     = []string{"oportunidade", "oportunidades", "trabalhar", "vaga", "vagas"}
	contractorKeywords = []string{"contratar", "obra", "obra nova", "contratante"}
)

// UserStore is the user persistence needed by the conversation
type UserStore interface {
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
}

// OpenJobLister lists postings eligible for matching
type OpenJobLister interface {
	ListOpen(ctx context.Context) ([]model.JobPosting, error)
}

// InboundMessage is a normalized message delivered by a channel adapter
type InboundMessage struct {
	From     string
	Body     string
	Location *model.Location // set only when both coordinates arrived
}

// ConversationService advances a user's conversation by one message
type ConversationService interface {
	HandleMessage(ctx context.Context, msg InboundMessage) (string, error)
}

type turn struct {
	user *model.User
	raw  string
	text string
}

type transition func(ctx context.Context, t turn) (reply, outcome string, err error)

type conversationService struct {
	users       UserStore
	jobs        OpenJobLister
	radiusKm    float64
	logger      *zap.Logger
	transitions map[model.Stage]transition
}

// NewConversationService creates a new ConversationService
func NewConversationService(users UserStore, jobs OpenJobLister, cfg config.MatchingConfig, logger *zap.Logger) ConversationService {
	radius := cfg.RadiusKm
	if radius <= 0 {
		radius = geo.DefaultRadiusKm
	}
	s := &conversationService{
		users:    users,
		jobs:     jobs,
		radiusKm: radius,
		logger:   logger,
	}
	s.transitions = map[model.Stage]transition{
		model.StageNew:          s.restart,
		model.StageChoosingType: s.chooseType,
		model.StageAskingName:   s.captureName,
		model.StageMainMenu:     s.mainMenu,
	}
	return s
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// HandleMessage applies exactly one transition for the sender and returns the reply
func (s *conversationService) HandleMessage(ctx context.Context, msg InboundMessage) (string, error) {
	log := s.logger.With(zap.String("from", msg.From))

	user, err := s.users.FindByPhone(ctx, msg.From)
	if err != nil {
		metrics.ConversationTurns.WithLabelValues(noUserStage, metrics.OutcomeFailed).Inc()
		return "", persistenceError("loading user", err)
	}

	if user == nil {
		user = &model.User{
			Phone: msg.From,
			Role:  model.RoleWorker, // placeholder until a type is chosen
			Stage: model.StageChoosingType,
		}
		if err := s.users.Create(ctx, user); err != nil {
			metrics.ConversationTurns.WithLabelValues(noUserStage, metrics.OutcomeFailed).Inc()
			return "", persistenceError("creating user", err)
		}
		log.Info("new user registered", zap.Int("user_id", user.ID))
		metrics.ConversationTurns.WithLabelValues(noUserStage, metrics.OutcomeCreated).Inc()
		return msgWelcome, nil
	}

	stage := user.Stage
	reply, outcome, err := s.dispatch(ctx, user, msg)
	if err != nil {
		metrics.ConversationTurns.WithLabelValues(stage.String(), metrics.OutcomeFailed).Inc()
		return "", err
	}

	log.Debug("conversation turn",
		zap.Stringer("stage", stage),
		zap.Stringer("next_stage", user.Stage),
		zap.String("outcome", outcome),
		zap.String("body", logger.BodyExcerpt(msg.Body)),
	)
	metrics.ConversationTurns.WithLabelValues(stage.String(), outcome).Inc()
	return reply, nil
}

func (s *conversationService) dispatch(ctx context.Context, user *model.User, msg InboundMessage) (string, string, error) {
	// A shared location wins over whatever text came with it.
	if msg.Location != nil {
		loc := *msg.Location
		user.Location = &loc
		if err := s.save(ctx, user); err != nil {
			return "", "", err
		}
		return msgLocationReceived, metrics.OutcomeLocation, nil
	}

	t := turn{user: user, raw: msg.Body, text: normalize(msg.Body)}
	next, ok := s.transitions[user.Stage]
	if !ok {
		return s.recoverStage(ctx, t)
	}
	return next(ctx, t)
}

func (s *conversationService) save(ctx context.Context, user *model.User) error {
	if err := s.users.Save(ctx, user); err != nil {
		return persistenceError("saving user", err)
	}
	return nil
}

func (s *conversationService) advance(ctx context.Context, user *model.User, to model.Stage, reply, outcome string) (string, string, error) {
	user.Stage = to
	if err := s.save(ctx, user); err != nil {
		return "", "", err
	}
	return reply, outcome, nil
}

func (s *conversationService) restart(ctx context.Context, t turn) (string, string, error) {
	return s.advance(ctx, t.user, model.StageChoosingType, msgRestart, metrics.OutcomeAdvanced)
}

func (s *conversationService) chooseType(ctx context.Context, t turn) (string, string, error) {
	switch {
	case containsAny(t.text, workerKeywords):
		t.user.Role = model.RoleWorker
		return s.advance(ctx, t.user, model.StageAskingName, msgAskWorkerName, metrics.OutcomeAdvanced)
	case containsAny(t.text, contractorKeywords):
		t.user.Role = model.RoleContractor
		return s.advance(ctx, t.user, model.StageAskingName, msgAskHirerName, metrics.OutcomeAdvanced)
	}
	return msgChooseTypeHelp, metrics.OutcomeRepeated, nil
}

func (s *conversationService) captureName(ctx context.Context, t turn) (string, string, error) {
	name := strings.TrimSpace(t.raw)
	if name == "" {
		return msgAskNameAgain, metrics.OutcomeRepeated, nil
	}
	// full_name is VARCHAR(255), which Postgres counts in characters
	if runes := []rune(name); len(runes) > maxNameRunes {
		name = strings.TrimSpace(string(runes[:maxNameRunes]))
	}
	t.user.DisplayName = name
	return s.advance(ctx, t.user, model.StageMainMenu, msgRegistered, metrics.OutcomeAdvanced)
}

func (s *conversationService) mainMenu(ctx context.Context, t turn) (string, string, error) {
	if t.text != jobsCommand {
		return msgUnknownCommand, metrics.OutcomeRepeated, nil
	}
	if t.user.Location == nil {
		return msgShareLocation, metrics.OutcomeRepeated, nil
	}

	open, err := s.jobs.ListOpen(ctx)
	if err != nil {
		return "", "", persistenceError("listing open jobs", err)
	}
	nearby := geo.FindNearby(t.user.Location.Latitude, t.user.Location.Longitude, open, s.radiusKm)
	metrics.NearbyJobsFound.Observe(float64(len(nearby)))

	return formatNearbyJobs(nearby), metrics.OutcomeRepeated, nil
}

func (s *conversationService) recoverStage(ctx context.Context, t turn) (string, string, error) {
	s.logger.Warn("unrecognized conversation stage, restarting",
		zap.String("from", t.user.Phone),
		zap.Int("user_id", t.user.ID),
	)
	return s.advance(ctx, t.user, model.StageChoosingType, msgStageRecovered, metrics.OutcomeRecovered)
}

func formatNearbyJobs(jobs []model.JobPosting) string {
	if len(jobs) == 0 {
		return msgNoNearbyJobs
	}
	lines := make([]string, 0, len(jobs)+1)
	lines = append(lines, msgNearbyJobsHeader)
	for _, j := range jobs {
		lines = append(lines, fmt.Sprintf("- %s (R$ %s)", j.Title, j.PaymentOffer.StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}

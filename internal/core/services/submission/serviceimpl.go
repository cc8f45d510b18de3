package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/core/sanitize"
	"gitlab.com/clawgames.net/internal/core/services/ratelimit"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
	"gitlab.com/clawgames.net/internal/telemetry"
)

var _ ISubmissionService = (*SubmissionOrchestrator)(nil)

const (
	ArtifactPrefix      = "games/"
	ArtifactContentType = "text/html"

	pathAgent = "agent"
	pathWeb   = "web"
)

// ArtifactKey is the storage location of a game's sanitized document
func ArtifactKey(ownerID uuid.UUID, slug string) string {
	return fmt.Sprintf("%s%s/%s.html", ArtifactPrefix, ownerID, slug)
}

// SubmissionOrchestrator runs the admission pipeline: identity or throttle,
// field validation, content scan, slug, artifact write, record write. The
// artifact is written before the record; a failed record write deletes it.
type SubmissionOrchestrator struct {
	authenticator CredentialAuthenticator
	limiter       ratelimit.ISubmissionRateLimiter
	scanner       ContentScanner
	gameRepo      secondary.GameRepository
	botPort       secondary.BotPort
	artifacts     secondary.ArtifactStore
	notifier      secondary.ReviewNotifier
	logger        primary.Logger
	metrics       *telemetry.Metrics
	clock         func() time.Time
}

func NewSubmissionOrchestrator(
	authenticator CredentialAuthenticator,
	limiter ratelimit.ISubmissionRateLimiter,
	scanner ContentScanner,
	gameRepo secondary.GameRepository,
	botPort secondary.BotPort,
	artifacts secondary.ArtifactStore,
	logger primary.Logger,
) *SubmissionOrchestrator {
	return &SubmissionOrchestrator{
		authenticator: authenticator,
		limiter:       limiter,
		scanner:       scanner,
		gameRepo:      gameRepo,
		botPort:       botPort,
		artifacts:     artifacts,
		logger:        logger,
		clock:         time.Now,
	}
}

// SetReviewNotifier sets the collaborator told about admitted games
func (s *SubmissionOrchestrator) SetReviewNotifier(notifier secondary.ReviewNotifier) {
	s.notifier = notifier
}

func (s *SubmissionOrchestrator) SetMetrics(metrics *telemetry.Metrics) {
	s.metrics = metrics
}

// SetClock replaces the time source
func (s *SubmissionOrchestrator) SetClock(clock func() time.Time) {
	if clock != nil {
		s.clock = clock
	}
}

func (s *SubmissionOrchestrator) SubmitAsAgent(ctx context.Context, cred domain.Credential, sub *domain.Submission) (*domain.SubmissionReceipt, error) {
	bot, err := s.AuthenticateAgent(ctx, cred)
	if err != nil {
		return nil, err
	}
	return s.SubmitAsBot(ctx, bot, sub)
}

func (s *SubmissionOrchestrator) AuthenticateAgent(ctx context.Context, cred domain.Credential) (*domain.Bot, error) {
	bot, err := s.authenticator.Authenticate(ctx, cred)
	if err != nil {
		s.record(ctx, pathAgent, err)
		return nil, err
	}
	return bot, nil
}

func (s *SubmissionOrchestrator) SubmitAsBot(ctx context.Context, bot *domain.Bot, sub *domain.Submission) (*domain.SubmissionReceipt, error) {
	if bot == nil {
		s.record(ctx, pathAgent, errs.InvalidCredential)
		return nil, errs.InvalidCredential
	}
	receipt, err := s.admit(ctx, sub, func(context.Context) (*domain.Bot, error) {
		return bot, nil
	})
	s.record(ctx, pathAgent, err)
	return receipt, err
}

func (s *SubmissionOrchestrator) SubmitAnonymous(ctx context.Context, sourceKey string, sub *domain.Submission) (*domain.SubmissionReceipt, error) {
	ok, err := s.limiter.Allow(ctx, sourceKey)
	if err != nil {
		err = fmt.Errorf("failed to check submission rate: %w: %w", errs.Persistence, err)
		s.record(ctx, pathWeb, err)
		return nil, err
	}
	if !ok {
		s.record(ctx, pathWeb, errs.RateLimited)
		return nil, errs.RateLimited
	}

	receipt, err := s.admit(ctx, sub, func(ctx context.Context) (*domain.Bot, error) {
		return s.communityOwner(ctx, sub.CreatorIdentity)
	})
	s.record(ctx, pathWeb, err)
	return receipt, err
}

// communityOwner returns the shared bot that owns every anonymous submission
// from one creator name.
func (s *SubmissionOrchestrator) communityOwner(ctx context.Context, creator *string) (*domain.Bot, error) {
	name := sanitize.NormalizeCreator(creator)
	bio := "Community creator: " + name
	bot, err := s.botPort.GetOrCreateByName(ctx, &domain.Bot{
		ID:        uuid.New(),
		Name:      sanitize.CommunityName(name),
		Bio:       &bio,
		Framework: domain.FrameworkHuman,
		CreatedAt: s.clock(),
	})
	if err != nil {
		s.logger.Error("Failed to resolve community creator", "creator", name, "error", err)
		return nil, fmt.Errorf("%w: %w: %w", errs.FailedToCreateUser, errs.Persistence, err)
	}
	return bot, nil
}

func (s *SubmissionOrchestrator) admit(
	ctx context.Context,
	sub *domain.Submission,
	resolveOwner func(context.Context) (*domain.Bot, error),
) (*domain.SubmissionReceipt, error) {
	fields := sanitize.ValidateFields(sub.Title, sub.Description)
	if !fields.Accepted {
		return nil, errs.NewValidationError(domain.Messages(fields.Violations)...)
	}

	verdict := s.scanner.Scan(sub.RawCode)
	if !verdict.Accepted {
		s.metrics.RecordViolations(ctx, verdict.Violations)
		s.logger.Info("Submission rejected by scanner", "title", fields.NormalizedTitle, "violations", len(verdict.Violations))
		return nil, &errs.SecurityViolation{Violations: verdict.Violations}
	}

	owner, err := resolveOwner(ctx)
	if err != nil {
		return nil, err
	}

	submittedAt := sub.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = s.clock()
	}
	slug := sanitize.GenerateSlug(fields.NormalizedTitle, submittedAt.UnixMilli())
	key := ArtifactKey(owner.ID, slug)

	if err := s.putArtifact(ctx, key, *verdict.SanitizedCode); err != nil {
		return nil, err
	}

	game := &domain.GameRecord{
		ID:             uuid.New(),
		Slug:           slug,
		Title:          fields.NormalizedTitle,
		Description:    fields.NormalizedDescription,
		OwnerID:        owner.ID,
		StorageLocator: key,
		Status:         domain.GameStatusPending,
		CreatedAt:      s.clock(),
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		s.logger.Error("Failed to create game record", "slug", slug, "error", err)
		s.compensate(ctx, key)
		return nil, fmt.Errorf("failed to create game record: %w: %w", errs.Persistence, err)
	}

	s.logger.Info("Game admitted", "gameId", game.ID, "slug", slug, "ownerId", owner.ID)
	s.notify(ctx, game, submittedAt)

	return &domain.SubmissionReceipt{
		GameID: game.ID,
		Slug:   game.Slug,
		Status: game.Status,
	}, nil
}

// putArtifact never overwrites an existing artifact
func (s *SubmissionOrchestrator) putArtifact(ctx context.Context, key string, code string) error {
	exists, err := s.artifacts.Exists(ctx, key)
	if err != nil {
		s.logger.Error("Failed to check artifact", "key", key, "error", err)
		return fmt.Errorf("failed to check artifact: %w: %w", errs.Persistence, err)
	}
	if exists {
		s.logger.Warn("Artifact already exists", "key", key)
		return fmt.Errorf("artifact %s: %w: %w", key, errs.Persistence, errs.Duplicate)
	}

	if err := s.artifacts.Put(ctx, key, strings.NewReader(code), int64(len(code)), ArtifactContentType); err != nil {
		s.logger.Error("Failed to store artifact", "key", key, "error", err)
		return fmt.Errorf("failed to store artifact: %w: %w", errs.Persistence, err)
	}
	return nil
}

// compensate removes an artifact whose record could not be written. A failed
// delete leaves an orphan for the reconciler.
func (s *SubmissionOrchestrator) compensate(ctx context.Context, key string) {
	if err := s.artifacts.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Error("Failed to remove orphaned artifact", "key", key, "error", err)
	}
}

func (s *SubmissionOrchestrator) notify(ctx context.Context, game *domain.GameRecord, submittedAt time.Time) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.NotifySubmitted(ctx, &domain.GameSubmittedEvent{
		GameID:         game.ID,
		Slug:           game.Slug,
		OwnerID:        game.OwnerID,
		StorageLocator: game.StorageLocator,
		SubmittedAt:    submittedAt,
	})
	if err != nil {
		s.logger.Warn("Review hand-off failed", "gameId", game.ID, "error", err)
	}
}

func (s *SubmissionOrchestrator) record(ctx context.Context, path string, err error) {
	s.metrics.RecordSubmission(ctx, path, outcome(err))
}

func outcome(err error) string {
	var ve *errs.ValidationError
	var sv *errs.SecurityViolation
	switch {
	case err == nil:
		return telemetry.OutcomeAdmitted
	case errors.As(err, &ve):
		return telemetry.OutcomeInvalid
	case errors.As(err, &sv):
		return telemetry.OutcomeViolation
	case errors.Is(err, errs.RateLimited):
		return telemetry.OutcomeThrottled
	case errors.Is(err, errs.MissingCredential), errors.Is(err, errs.InvalidCredential):
		return telemetry.OutcomeUnauthorized
	default:
		return telemetry.OutcomeFailed
	}
}

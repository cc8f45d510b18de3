package submission

import (
	"context"

	"gitlab.com/clawgames.net/internal/domain"
)

// ISubmissionService admits untrusted game submissions
type ISubmissionService interface {
	// SubmitAsAgent authenticates the credential and admits the submission
	// under the authenticated bot.
	SubmitAsAgent(ctx context.Context, cred domain.Credential, sub *domain.Submission) (*domain.SubmissionReceipt, error)

	// AuthenticateAgent resolves the credential to its bot without reading the
	// submission, so callers can reject unauthenticated requests first.
	AuthenticateAgent(ctx context.Context, cred domain.Credential) (*domain.Bot, error)

	// SubmitAsBot admits the submission under an already authenticated bot
	SubmitAsBot(ctx context.Context, bot *domain.Bot, sub *domain.Submission) (*domain.SubmissionReceipt, error)

	// SubmitAnonymous throttles by source, then admits the submission under
	// the community bot derived from the creator name.
	SubmitAnonymous(ctx context.Context, sourceKey string, sub *domain.Submission) (*domain.SubmissionReceipt, error)
}

// CredentialAuthenticator resolves agent credentials to a bot
type CredentialAuthenticator interface {
	Authenticate(ctx context.Context, cred domain.Credential) (*domain.Bot, error)
}

// ContentScanner produces the sanitization verdict for submitted code
type ContentScanner interface {
	Scan(code string) domain.SanitizationVerdict
}

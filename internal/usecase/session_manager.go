package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/playforgeinc/gridgame-backend/internal/entity"
	"github.com/playforgeinc/gridgame-backend/internal/game"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListRecent(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

// notifier receives the fresh snapshot after every mutating call so watchers
// can re-render. Implementations must not block.
type notifier interface {
	Publish(sessionID string, snap game.Snapshot)
}

// SessionManager loads a session, applies one core operation and persists
// the outcome. The core itself holds no locks; serialization happens here by
// the load-mutate-store round trip per call.
type SessionManager struct {
	logger   *slog.Logger
	sessions sessionRepo
	results  resultRepo
	notifier notifier
}

func NewSessionManager(logger *slog.Logger, sessions sessionRepo, results resultRepo, notifier notifier) *SessionManager {
	return &SessionManager{
		logger: logger,

		sessions: sessions,
		results:  results,
		notifier: notifier,
	}
}

// CreateSession registers a fresh session for the given grid size.
func (that *SessionManager) CreateSession(ctx context.Context, size int) (*entity.Session, error) {
	session, err := entity.NewSession(uuid.NewString(), size)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err = that.sessions.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

func (that *SessionManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// Play applies a move at cell and persists the new position. A finished game
// whose turn becomes terminal with this move gets archived once.
func (that *SessionManager) Play(ctx context.Context, id string, cell int) (game.Snapshot, error) {
	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	wasOngoing := session.Game.Status().State == game.StatusOngoing

	snap, err := session.Game.Play(cell)
	if err != nil {
		return snap, fmt.Errorf("failed to make move: %w", err)
	}

	session.Touch()
	if err = that.sessions.CreateOrUpdate(ctx, session); err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to update session: %w", err)
	}

	if wasOngoing && snap.Status.State != game.StatusOngoing {
		that.archiveResult(ctx, session, snap.Status)
	}

	that.publish(session.ID, snap)

	return snap, nil
}

// JumpTo moves the session's position pointer.
func (that *SessionManager) JumpTo(ctx context.Context, id string, move int) (game.Snapshot, error) {
	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	snap, err := session.Game.JumpTo(move)
	if err != nil {
		return snap, fmt.Errorf("failed to jump: %w", err)
	}

	session.Touch()
	if err = that.sessions.CreateOrUpdate(ctx, session); err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to update session: %w", err)
	}

	that.publish(session.ID, snap)

	return snap, nil
}

// Restart resets the session's history; the score tally survives.
func (that *SessionManager) Restart(ctx context.Context, id string) (game.Snapshot, error) {
	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	snap := session.Game.Restart()

	session.Touch()
	if err = that.sessions.CreateOrUpdate(ctx, session); err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to update session: %w", err)
	}

	that.publish(session.ID, snap)

	return snap, nil
}

// DeleteSession drops a session and, with it, its score tally.
func (that *SessionManager) DeleteSession(ctx context.Context, id string) error {
	if err := that.sessions.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (that *SessionManager) RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	results, err := that.results.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

// archiveResult is best effort: a failed archive write must not undo an
// already persisted move.
func (that *SessionManager) archiveResult(ctx context.Context, session *entity.Session, status game.Status) {
	log := that.logger.With("method", "archiveResult")

	result := entity.ResultFromStatus(session, status)
	if err := that.results.Save(ctx, result); err != nil {
		log.Error("failed to archive result", "sessionID", session.ID, "error", err)
		return
	}

	log.Info("game archived", "sessionID", session.ID, "winner", result.Winner, "moves", result.Moves)
}

func (that *SessionManager) publish(sessionID string, snap game.Snapshot) {
	if that.notifier != nil {
		that.notifier.Publish(sessionID, snap)
	}
}

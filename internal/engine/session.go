package engine

import (
	"context"

	"stackup.dev/stackup/internal/git"
)

// Session keys live next to the branch metadata in the repository-local git
// config, so an interrupted pass can be resumed by a fresh process.
const (
	sessionStartingBranchKey   = "stackup.rebase-update.starting-branch"
	sessionStartingUpstreamKey = "stackup.rebase-update.starting-upstream"
	sessionQueueKey            = "stackup.rebase-update.queue"
	sessionStalledKey          = "stackup.rebase-update.stalled"
	sessionStalledOntoKey      = "stackup.rebase-update.stalled-onto"
	sessionFrozenKey           = "stackup.rebase-update.frozen"
)

// Session is the persisted state of an in-flight rebase pass: where the user
// started, the ordered branches still to process, and, while a conflict is
// open, which branch is stalled and what it was being rebased onto.
type Session struct {
	StartingBranch   string
	StartingUpstream string
	Queue            []string
	Stalled          string
	StalledOnto      string
	Frozen           bool
}

// LoadSession reads the persisted session, or nil when no pass is in flight
func (e *Engine) LoadSession(ctx context.Context) (*Session, error) {
	startingBranch, err := git.ConfigGet(ctx, sessionStartingBranchKey)
	if err != nil {
		return nil, err
	}
	if startingBranch == "" {
		return nil, nil
	}

	startingUpstream, err := git.ConfigGet(ctx, sessionStartingUpstreamKey)
	if err != nil {
		return nil, err
	}
	queue, err := git.ConfigGetAll(ctx, sessionQueueKey)
	if err != nil {
		return nil, err
	}
	stalled, err := git.ConfigGet(ctx, sessionStalledKey)
	if err != nil {
		return nil, err
	}
	stalledOnto, err := git.ConfigGet(ctx, sessionStalledOntoKey)
	if err != nil {
		return nil, err
	}
	frozen, err := git.ConfigGet(ctx, sessionFrozenKey)
	if err != nil {
		return nil, err
	}

	return &Session{
		StartingBranch:   startingBranch,
		StartingUpstream: startingUpstream,
		Queue:            queue,
		Stalled:          stalled,
		StalledOnto:      stalledOnto,
		Frozen:           frozen == "true",
	}, nil
}

// SaveSession persists the whole session, replacing any previous state
func (e *Engine) SaveSession(ctx context.Context, session *Session) error {
	if err := git.ConfigSet(ctx, sessionStartingBranchKey, session.StartingBranch); err != nil {
		return err
	}
	if err := setOrUnset(ctx, sessionStartingUpstreamKey, session.StartingUpstream); err != nil {
		return err
	}

	if err := git.ConfigUnset(ctx, sessionQueueKey); err != nil {
		return err
	}
	for _, branchName := range session.Queue {
		if err := git.ConfigAdd(ctx, sessionQueueKey, branchName); err != nil {
			return err
		}
	}

	if err := setOrUnset(ctx, sessionStalledKey, session.Stalled); err != nil {
		return err
	}
	if err := setOrUnset(ctx, sessionStalledOntoKey, session.StalledOnto); err != nil {
		return err
	}

	if session.Frozen {
		return git.ConfigSet(ctx, sessionFrozenKey, "true")
	}
	return git.ConfigUnset(ctx, sessionFrozenKey)
}

// ClearSession removes all persisted session state, marking the pass done
func (e *Engine) ClearSession(ctx context.Context) error {
	keys := []string{
		sessionStartingBranchKey,
		sessionStartingUpstreamKey,
		sessionQueueKey,
		sessionStalledKey,
		sessionStalledOntoKey,
		sessionFrozenKey,
	}
	for _, key := range keys {
		if err := git.ConfigUnset(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func setOrUnset(ctx context.Context, key, value string) error {
	if value == "" {
		return git.ConfigUnset(ctx, key)
	}
	return git.ConfigSet(ctx, key, value)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/notekeeper/internal/errs"
	"github.com/and161185/notekeeper/internal/limiter"
	"github.com/and161185/notekeeper/internal/llm"
	"github.com/and161185/notekeeper/internal/model"
	"github.com/and161185/notekeeper/internal/repository"
)

// Assistant is the AI gateway as seen by AssistService. *llm.Client satisfies it.
type Assistant interface {
	Improve(ctx context.Context, text, action string) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
	KeyPoints(ctx context.Context, text string) ([]string, error)
	SuggestTags(ctx context.Context, text string) ([]string, error)
	ActionItems(ctx context.Context, text string) ([]string, error)
	Continue(ctx context.Context, text string) (string, error)
}

var _ Assistant = (*llm.Client)(nil)

// Usage feature labels.
const (
	FeatureSummary   = "summarize_summary"
	FeatureKeyPoints = "summarize_keypoints"
	FeatureAutoTag   = "auto_tag"
	FeatureActions   = "extract_actions"
	FeatureContinue  = "continue_writing"
)

// AssistService runs AI assist operations on behalf of a user and meters each successful call.
type AssistService interface {
	Improve(ctx context.Context, userID uuid.UUID, text, action string) (string, error)
	Summarize(ctx context.Context, userID uuid.UUID, text string) (string, error)
	KeyPoints(ctx context.Context, userID uuid.UUID, text string) ([]string, error)
	// SuggestTags also stores the tags on noteID when it is given.
	SuggestTags(ctx context.Context, userID uuid.UUID, text string, noteID *uuid.UUID) ([]string, error)
	ActionItems(ctx context.Context, userID uuid.UUID, text string) ([]string, error)
	Continue(ctx context.Context, userID uuid.UUID, text string) (string, error)
}

type AssistServiceImpl struct {
	ai    Assistant
	usage repository.UsageRepository
	notes NoteService
	lim   limiter.Limiter
}

// NewAssistService constructs AssistService. lim may be nil for no budget.
func NewAssistService(ai Assistant, usage repository.UsageRepository, notes NoteService, lim limiter.Limiter) *AssistServiceImpl {
	return &AssistServiceImpl{ai: ai, usage: usage, notes: notes, lim: lim}
}

// EstimateTokens approximates the token count of n characters.
func EstimateTokens(n int) int {
	return (n + 3) / 4
}

func chars(s ...string) int {
	n := 0
	for _, x := range s {
		n += utf8.RuneCountInString(x)
	}
	return n
}

func checkText(userID uuid.UUID, text string) error {
	if userID == uuid.Nil {
		return errors.New("validation: empty userID")
	}
	if text == "" {
		return errs.Invalid("text", "must not be empty")
	}
	return nil
}

// begin validates the request and checks the user's budget.
func (s *AssistServiceImpl) begin(ctx context.Context, userID uuid.UUID, text string) error {
	if err := checkText(userID, text); err != nil {
		return err
	}
	if s.lim == nil {
		return nil
	}
	ok, retry, err := s.lim.Allow(ctx, userID)
	if err != nil {
		return fmt.Errorf("check budget: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: retry after %s", errs.ErrRateLimited, retry.Round(time.Second))
	}
	return nil
}

func (s *AssistServiceImpl) record(ctx context.Context, userID uuid.UUID, feature string, n int) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	u := &model.AIUsage{ID: id, UserID: userID, Feature: feature, TokensUsed: EstimateTokens(n)}
	if err := s.usage.Record(ctx, u); err != nil {
		return fmt.Errorf("record usage %s: %w", feature, err)
	}
	return nil
}

// Improve rewrites text. The action must be one of llm.Actions.
func (s *AssistServiceImpl) Improve(ctx context.Context, userID uuid.UUID, text, action string) (string, error) {
	if err := checkText(userID, text); err != nil {
		return "", err
	}
	if !llm.IsAction(action) {
		return "", errs.Invalid("action", "unknown action")
	}
	if err := s.begin(ctx, userID, text); err != nil {
		return "", err
	}
	out, err := s.ai.Improve(ctx, text, action)
	if err != nil {
		return "", err
	}
	if err := s.record(ctx, userID, "improve_"+action, chars(text, out)); err != nil {
		return "", err
	}
	return out, nil
}

func (s *AssistServiceImpl) Summarize(ctx context.Context, userID uuid.UUID, text string) (string, error) {
	if err := s.begin(ctx, userID, text); err != nil {
		return "", err
	}
	out, err := s.ai.Summarize(ctx, text)
	if err != nil {
		return "", err
	}
	if err := s.record(ctx, userID, FeatureSummary, chars(text)); err != nil {
		return "", err
	}
	return out, nil
}

func (s *AssistServiceImpl) KeyPoints(ctx context.Context, userID uuid.UUID, text string) ([]string, error) {
	if err := s.begin(ctx, userID, text); err != nil {
		return nil, err
	}
	out, err := s.ai.KeyPoints(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, userID, FeatureKeyPoints, chars(text)); err != nil {
		return nil, err
	}
	return out, nil
}

// SuggestTags checks note ownership before calling the model so a foreign
// note id costs nothing.
func (s *AssistServiceImpl) SuggestTags(ctx context.Context, userID uuid.UUID, text string, noteID *uuid.UUID) ([]string, error) {
	if err := s.begin(ctx, userID, text); err != nil {
		return nil, err
	}
	if noteID != nil {
		if _, err := s.notes.Get(ctx, userID, *noteID); err != nil {
			return nil, err
		}
	}
	tags, err := s.ai.SuggestTags(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, userID, FeatureAutoTag, chars(text)); err != nil {
		return nil, err
	}
	if noteID != nil {
		if err := s.notes.SetTags(ctx, userID, *noteID, tags); err != nil {
			return nil, fmt.Errorf("store tags: %w", err)
		}
	}
	return tags, nil
}

func (s *AssistServiceImpl) ActionItems(ctx context.Context, userID uuid.UUID, text string) ([]string, error) {
	if err := s.begin(ctx, userID, text); err != nil {
		return nil, err
	}
	out, err := s.ai.ActionItems(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, userID, FeatureActions, chars(text)); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AssistServiceImpl) Continue(ctx context.Context, userID uuid.UUID, text string) (string, error) {
	if err := s.begin(ctx, userID, text); err != nil {
		return "", err
	}
	out, err := s.ai.Continue(ctx, text)
	if err != nil {
		return "", err
	}
	if err := s.record(ctx, userID, FeatureContinue, chars(text, out)); err != nil {
		return "", err
	}
	return out, nil
}

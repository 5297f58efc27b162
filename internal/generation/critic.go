package generation

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/noble-hunt/AXLE-sub000/internal/errors"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// passingScore is the rubric threshold below which the critic's patch is
// applied. It doubles as the fallback score recorded when the critic is
// unreachable, so an outage never changes the composed workout.
const passingScore = 80

// criticTimeout bounds a single completion call; one retry is allowed on
// top of it.
const criticTimeout = 20 * time.Second

// completionFunc is the seam for tests: production wires the OpenAI client,
// tests inject canned responses.
type completionFunc func(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)

// CriticReview is the parsed critic verdict.
type CriticReview struct {
	Score  int             `json:"score"`
	Issues []string        `json:"issues,omitempty"`
	Patch  json.RawMessage `json:"patch,omitempty"`
}

// WorkoutPatch is the subset of workout fields the critic may rewrite.
// Anything else in the patch payload is ignored.
type WorkoutPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Intensity   *int    `json:"intensity,omitempty"`
	Blocks      []Block `json:"blocks,omitempty"`
}

// Critic scores a composed workout against a coaching rubric and may propose
// one repair patch. It is strictly advisory: every failure mode degrades to
// the unmodified workout.
type Critic struct {
	complete completionFunc
	model    openai.ChatModel
	logger   *slog.Logger
}

// NewCritic builds a critic backed by the OpenAI chat completions API.
func NewCritic(apiKey string, logger *slog.Logger) *Critic {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Critic{
		complete: func(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
			return client.Chat.Completions.New(ctx, params)
		},
		model:  openai.ChatModelGPT4o,
		logger: logger,
	}
}

// NewCriticWithCompletion builds a critic with an injected completion
// function. Used by tests.
func NewCriticWithCompletion(complete completionFunc, logger *slog.Logger) *Critic {
	return &Critic{
		complete: complete,
		model:    openai.ChatModelGPT4o,
		logger:   logger,
	}
}

const criticSystemPrompt = `You are a strength and conditioning coach reviewing a generated workout. Score it 0-100 using this rubric:
- Safety and movement order (40 points)
- Recovery and readiness fit (20 points)
- Goal and style alignment (20 points)
- Time budget realism (10 points)
- Movement variety (10 points)

Respond with a single JSON object and nothing else:
{"score": <int>, "issues": [<strings>], "patch": {<optional corrections>}}

The patch may only contain "title", "description", "intensity", or "blocks" (a full replacement block list in the same schema as the input). Omit the patch when the score is 80 or above.`

// Review scores the workout, retrying once on transport failure. The
// returned error means the critic could not produce a verdict at all;
// callers fall back to a default passing score.
func (c *Critic) Review(ctx context.Context, w Workout) (CriticReview, error) {
	payload, err := json.Marshal(w)
	if err != nil {
		return CriticReview{}, errors.Wrap(err, "marshal workout for critic")
	}

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(criticSystemPrompt),
			openai.UserMessage(string(payload)),
		},
	}

	var lastErr error
	for attempt := range 2 {
		callCtx, cancel := context.WithTimeout(ctx, criticTimeout)
		completion, err := c.complete(callCtx, params)
		cancel()
		if err != nil {
			lastErr = err
			c.logger.LogAttrs(ctx, slog.LevelWarn, "critic completion failed",
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()))
			continue
		}
		review, err := parseCriticResponse(completion)
		if err != nil {
			lastErr = err
			continue
		}
		return review, nil
	}
	return CriticReview{}, errors.Wrap(lastErr, "critic unavailable")
}

// parseCriticResponse extracts the JSON verdict from the first choice,
// tolerating a markdown code fence around it.
func parseCriticResponse(completion *openai.ChatCompletion) (CriticReview, error) {
	if len(completion.Choices) == 0 {
		return CriticReview{}, errors.New("critic returned no choices")
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var review CriticReview
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &review); err != nil {
		return CriticReview{}, errors.Wrap(err, "parse critic response")
	}
	if review.Score < 0 || review.Score > 100 {
		return CriticReview{}, errors.New("critic score out of range")
	}
	return review, nil
}

// applyPatch merges the recognised patch fields into a copy of the workout.
// Unknown fields are dropped silently; a malformed patch leaves the workout
// untouched.
func applyPatch(w Workout, raw json.RawMessage) (Workout, bool) {
	if len(raw) == 0 {
		return w, false
	}
	var patch WorkoutPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return w, false
	}

	out := cloneWorkout(w)
	changed := false
	if patch.Title != nil && *patch.Title != "" {
		out.Title = *patch.Title
		changed = true
	}
	if patch.Description != nil {
		out.Description = *patch.Description
		changed = true
	}
	if patch.Intensity != nil && *patch.Intensity >= 1 && *patch.Intensity <= 10 {
		out.Intensity = *patch.Intensity
		changed = true
	}
	if len(patch.Blocks) > 0 {
		out.Blocks = patch.Blocks
		changed = true
	}
	return out, changed
}

package narration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/dungeon"
)

// MessageCreator is the part of the Anthropic messages API the narrator uses.
// *anthropic.MessageService satisfies it.
type MessageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Claude narrates epilogues with a Claude model and falls back to another
// narrator when the API call fails or returns no text.
type Claude struct {
	messages  MessageCreator
	model     string
	maxTokens int64
	timeout   time.Duration
	fallback  Narrator
	logger    *zap.Logger
}

// NewClaude creates a Claude narrator over messages.
//
// Precondition: messages must be non-nil. A nil fallback becomes Static; a
// nil logger is replaced with a no-op logger.
func NewClaude(messages MessageCreator, cfg config.NarrationConfig, fallback Narrator, logger *zap.Logger) *Claude {
	if fallback == nil {
		fallback = Static{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Claude{
		messages:  messages,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		fallback:  fallback,
		logger:    logger,
	}
}

// New returns the narrator selected by cfg: Claude when narration is
// enabled, Static otherwise.
func New(cfg config.NarrationConfig, logger *zap.Logger) Narrator {
	if !cfg.Enabled {
		return Static{}
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return NewClaude(&client.Messages, cfg, Static{}, logger)
}

// Epilogue implements Narrator. Aborted runs are never sent to the API.
func (n *Claude) Epilogue(ctx context.Context, c *character.Character, d dungeon.Dungeon, res dungeon.Result) (string, error) {
	if res.Outcome == dungeon.OutcomeAborted {
		return n.fallback.Epilogue(ctx, c, d, res)
	}
	text, err := n.generate(ctx, prompt(c, d, res))
	if err != nil {
		n.logger.Warn("narration failed, using fallback",
			zap.String("run_id", res.RunID),
			zap.Error(err),
		)
		return n.fallback.Epilogue(ctx, c, d, res)
	}
	return text, nil
}

func (n *Claude) generate(ctx context.Context, p string) (string, error) {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	msg, err := n.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(n.model),
		MaxTokens: n.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating message: %w", err)
	}
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("model returned no text")
	}
	return text, nil
}

package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/folio/internal/config"
	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot    *tele.Bot
	sender *sender
	chat   core.Chatbot
	router core.CmdRouter
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	chat core.Chatbot,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		sender: newSender(b),
		chat:   chat,
		router: router,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("username", b.bot.Me.Username).Msg("starting telegram bot")

	cmds := make([]tele.Command, 0)
	for _, c := range b.router.ListCommands() {
		cmds = append(cmds, tele.Command{Text: c.Name(), Description: c.Description()})
	}
	if err := b.bot.SetCommands(cmds); err != nil {
		logger.Warn().Err(err).Msg("failed to register telegram commands")
	}

	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func conversationID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	id := conversationID(c.Chat().ID)

	if out, ok := b.router.Execute(ctx, id, c.Text()); ok {
		return b.sender.sendMarkdown(ctx, c.Recipient(), out, nil)
	}

	_ = c.Notify(tele.Typing)

	reply := b.chat.Ask(ctx, id, c.Text())
	log.FromCtx(ctx).Debug().
		Str("conversation", id).
		Str("intent", reply.Intent).
		Str("source", reply.Source).
		Msg("telegram reply")

	return b.sender.sendMarkdown(ctx, c.Recipient(), reply.Text, reply.Suggestions)
}

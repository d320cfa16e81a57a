package telegram

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/folio/pkg/conv"
	"github.com/sandevgo/folio/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type sender struct {
	bot *tele.Bot
}

func newSender(bot *tele.Bot) *sender {
	return &sender{bot: bot}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if
// needed. Suggestions become a one-time keyboard on the last chunk.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string, suggestions []string) error {
	logger := log.FromCtx(ctx)
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}

	chunks := splitHTML(html, maxTelegramMsgLen)
	for i, chunk := range chunks {
		opts := []interface{}{tele.ModeHTML}
		if i == len(chunks)-1 {
			opts = append(opts, suggestionKeyboard(suggestions))
		}

		if _, err := s.bot.Send(to, chunk, opts...); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// suggestionKeyboard lays out one suggestion per row. Without suggestions
// any previous keyboard is removed.
func suggestionKeyboard(suggestions []string) *tele.ReplyMarkup {
	if len(suggestions) == 0 {
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	}

	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	rows := make([]tele.Row, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, markup.Row(markup.Text(s)))
	}
	markup.Reply(rows...)
	return markup
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It prefers newlines, then spaces, and never cuts inside a tag or a
// multi-byte character.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := splitPoint(text, maxLen)
		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}

func splitPoint(text string, maxLen int) int {
	head := text[:maxLen]
	cut := maxLen
	if idx := strings.LastIndex(head, "\n"); idx > maxLen/3 {
		cut = idx
	} else if idx := strings.LastIndex(head, " "); idx > maxLen/3 {
		cut = idx
	}

	if open := strings.LastIndex(text[:cut], "<"); open > strings.LastIndex(text[:cut], ">") && open > 0 {
		cut = open
	}

	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	if cut == 0 {
		// a single tag or rune longer than maxLen
		_, size := utf8.DecodeRuneInString(text)
		cut = size
	}
	return cut
}

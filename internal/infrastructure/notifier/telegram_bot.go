package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/value"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendDecisionChange reports one decision flip to the operations chat.
func (b *TelegramBot) SendDecisionChange(ctx context.Context, item *entity.Item, log *entity.DecisionLog) error {
	text := fmt.Sprintf(
		"%s <b>%s</b>\n\n"+
			"🏷 <b>Item:</b> %s\n"+
			"🛒 <b>Market:</b> %s / %s\n"+
			"💰 <b>Profit:</b> %d\n"+
			"🔀 <b>Decision:</b> %s → %s\n"+
			"📝 %s",
		flipEmoji(log.ToDecision),
		flipTitle(log.ToDecision),
		itemTitle(item),
		item.Market,
		item.Category,
		log.Profit,
		log.FromDecision,
		log.ToDecision,
		log.Reason,
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain text message.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}

func itemTitle(item *entity.Item) string {
	if item.Name != "" {
		return item.Name
	}

	return item.ID
}

func flipEmoji(to value.Decision) string {
	if to == value.DecisionSell {
		return "✅"
	}

	return "🛑"
}

func flipTitle(to value.Decision) string {
	if to == value.DecisionSell {
		return "NOW PROFITABLE"
	}

	return "NO LONGER PROFITABLE"
}

package in

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"worklog/internal/modules/bot/domain"
	"worklog/internal/modules/bot/dto"
)

type fakeChat struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	sent      []*discordgo.MessageSend
	edits     []*discordgo.MessageEdit

	// When set, edits wait for release and every reply is signalled on
	// responded.
	release   chan struct{}
	responded chan struct{}
}

func (f *fakeChat) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	f.responses = append(f.responses, resp)
	f.mu.Unlock()
	if f.responded != nil {
		f.responded <- struct{}{}
	}
	return nil
}

func (f *fakeChat) ChannelMessageSendComplex(_ string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, data)
	return &discordgo.Message{}, nil
}

func (f *fakeChat) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, m)
	return &discordgo.Message{}, nil
}

type fakeBot struct {
	logins  []string
	logouts []string
	setupOK bool
}

var board = dto.BoardOutput{
	Title:       domain.Title,
	Description: domain.Description,
	Sections:    []dto.SectionOutput{{Name: "Total Overall Time", Value: "1. <@1> - 1.00 hours"}},
	Footer:      "footer",
}

func (f *fakeBot) Login(_ context.Context, in dto.InteractionInput) dto.ReplyOutput {
	f.logins = append(f.logins, in.UserID)
	b := board
	return dto.ReplyOutput{Message: domain.MsgLoggedIn, OK: true, Board: &b}
}

func (f *fakeBot) Logout(_ context.Context, in dto.InteractionInput) dto.ReplyOutput {
	f.logouts = append(f.logouts, in.UserID)
	return dto.ReplyOutput{Message: domain.MsgNotLoggedIn}
}

func (f *fakeBot) Setup(context.Context) dto.ReplyOutput {
	if !f.setupOK {
		return dto.ReplyOutput{Message: domain.MsgStorageUnavailable}
	}
	b := board
	return dto.ReplyOutput{OK: true, Board: &b}
}

func press(customID string) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type:    discordgo.InteractionMessageComponent,
		Data:    discordgo.MessageComponentInteractionData{CustomID: customID},
		Member:  &discordgo.Member{User: &discordgo.User{ID: "1"}},
		Message: &discordgo.Message{ID: "m1", ChannelID: "c1"},
	}
}

func TestLoginButtonRepliesAndRefreshes(t *testing.T) {
	t.Parallel()
	bot := &fakeBot{}
	chat := &fakeChat{}
	h := NewDiscordHandler(bot, "", zerolog.Nop())

	h.HandleInteraction(context.Background(), chat, press(dto.ButtonLogin))

	if len(bot.logins) != 1 || bot.logins[0] != "1" {
		t.Fatalf("expected login for user 1, got %v", bot.logins)
	}
	if len(chat.responses) != 1 {
		t.Fatalf("expected one response, got %d", len(chat.responses))
	}
	data := chat.responses[0].Data
	if data.Content != domain.MsgLoggedIn || data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Fatalf("unexpected response: %+v", data)
	}
	if len(chat.edits) != 1 || chat.edits[0].ID != "m1" || chat.edits[0].Channel != "c1" {
		t.Fatalf("expected board edit, got %+v", chat.edits)
	}
	embeds := *chat.edits[0].Embeds
	if len(embeds) != 1 || embeds[0].Title != domain.Title || embeds[0].Color != embedColor {
		t.Fatalf("unexpected embed: %+v", embeds)
	}
}

func TestLogoutRejectionSkipsRefresh(t *testing.T) {
	t.Parallel()
	bot := &fakeBot{}
	chat := &fakeChat{}
	i := press(dto.ButtonLogout)
	i.Member = nil
	i.User = &discordgo.User{ID: "2"}

	NewDiscordHandler(bot, "!", zerolog.Nop()).HandleInteraction(context.Background(), chat, i)

	if len(bot.logouts) != 1 || bot.logouts[0] != "2" {
		t.Fatalf("expected logout for user 2, got %v", bot.logouts)
	}
	if len(chat.responses) != 1 || chat.responses[0].Data.Content != domain.MsgNotLoggedIn {
		t.Fatalf("unexpected responses: %+v", chat.responses)
	}
	if len(chat.edits) != 0 {
		t.Fatalf("expected no edit, got %d", len(chat.edits))
	}
}

func TestUnknownButtonIgnored(t *testing.T) {
	t.Parallel()
	bot := &fakeBot{}
	chat := &fakeChat{}
	NewDiscordHandler(bot, "!", zerolog.Nop()).HandleInteraction(context.Background(), chat, press("other"))
	if len(bot.logins)+len(bot.logouts) != 0 || len(chat.responses) != 0 {
		t.Fatal("unknown button should be ignored")
	}
}

func TestSetupCommand(t *testing.T) {
	t.Parallel()
	bot := &fakeBot{setupOK: true}
	chat := &fakeChat{}
	h := NewDiscordHandler(bot, "!", zerolog.Nop())
	ctx := context.Background()

	h.HandleMessage(ctx, chat, &discordgo.Message{Content: "!setup", ChannelID: "c1", Author: &discordgo.User{ID: "1", Bot: true}})
	h.HandleMessage(ctx, chat, &discordgo.Message{Content: "hello", ChannelID: "c1", Author: &discordgo.User{ID: "1"}})
	if len(chat.sent) != 0 {
		t.Fatalf("expected nothing sent, got %d", len(chat.sent))
	}

	h.HandleMessage(ctx, chat, &discordgo.Message{Content: " !setup ", ChannelID: "c1", Author: &discordgo.User{ID: "1"}})
	if len(chat.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(chat.sent))
	}
	msg := chat.sent[0]
	if len(msg.Embeds) != 1 || msg.Embeds[0].Description != domain.Description || msg.Embeds[0].Footer.Text != "footer" {
		t.Fatalf("unexpected embed: %+v", msg.Embeds)
	}
	row, ok := msg.Components[0].(discordgo.ActionsRow)
	if !ok || len(row.Components) != 2 {
		t.Fatalf("unexpected components: %+v", msg.Components)
	}
	if row.Components[0].(discordgo.Button).CustomID != dto.ButtonLogin ||
		row.Components[1].(discordgo.Button).CustomID != dto.ButtonLogout {
		t.Fatalf("unexpected buttons: %+v", row.Components)
	}

	bot.setupOK = false
	h.HandleMessage(ctx, chat, &discordgo.Message{Content: "!setup", ChannelID: "c1", Author: &discordgo.User{ID: "1"}})
	if len(chat.sent) != 2 || chat.sent[1].Content != domain.MsgStorageUnavailable || chat.sent[1].Embeds != nil {
		t.Fatalf("expected storage failure notice, got %+v", chat.sent)
	}
}

func TestSlowBoardEditDoesNotDelayReplies(t *testing.T) {
	t.Parallel()
	const presses = 5
	bot := &fakeBot{}
	chat := &fakeChat{release: make(chan struct{}), responded: make(chan struct{}, presses)}
	h := NewDiscordHandler(bot, "!", zerolog.Nop())

	var wg sync.WaitGroup
	for n := 0; n < presses; n++ {
		i := press(dto.ButtonLogin)
		i.Member.User = &discordgo.User{ID: fmt.Sprintf("u%d", n)}
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.HandleInteraction(context.Background(), chat, i)
		}()
	}

	// Every press must be answered while the first board edit is still stuck.
	deadline := time.After(2 * time.Second)
	for n := 0; n < presses; n++ {
		select {
		case <-chat.responded:
		case <-deadline:
			t.Fatalf("only %d of %d presses answered while a board edit was pending", n, presses)
		}
	}
	close(chat.release)
	wg.Wait()

	if len(bot.logins) != presses {
		t.Fatalf("expected %d logins, got %d", presses, len(bot.logins))
	}
	if len(chat.edits) == 0 || len(chat.edits) > presses {
		t.Fatalf("unexpected edit count %d", len(chat.edits))
	}
}

func TestStaleBoardNotWrittenOverNewer(t *testing.T) {
	t.Parallel()
	chat := &fakeChat{}
	h := NewDiscordHandler(&fakeBot{}, "!", zerolog.Nop())
	msg := &discordgo.Message{ID: "m1", ChannelID: "c1"}

	h.refresh(chat, msg, board, 2)
	h.refresh(chat, msg, board, 1)
	h.refresh(chat, msg, board, 3)
	if len(chat.edits) != 2 {
		t.Fatalf("expected the older board to be skipped, got %d edits", len(chat.edits))
	}
}

package in

import (
	"context"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"worklog/internal/modules/bot/dto"
	botin "worklog/internal/modules/bot/port/in"
)

// ChatAPI is the part of *discordgo.Session the handler talks to.
type ChatAPI interface {
	InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordHandler runs one usecase call at a time. Replies and board edits
// happen outside that lock so a slow edit never delays the next reply.
type DiscordHandler struct {
	mu     sync.Mutex
	seq    uint64
	bot    botin.Usecase
	prefix string
	logger zerolog.Logger

	editMu sync.Mutex
	edited map[string]uint64
}

func NewDiscordHandler(bot botin.Usecase, prefix string, logger zerolog.Logger) *DiscordHandler {
	if prefix == "" {
		prefix = "!"
	}
	return &DiscordHandler{
		bot:    bot,
		prefix: prefix,
		logger: logger.With().Str("component", "discord").Logger(),
		edited: map[string]uint64{},
	}
}

// Register attaches the handler to a gateway session. ctx bounds every
// event handled afterwards.
func (h *DiscordHandler) Register(ctx context.Context, s *discordgo.Session) {
	s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		if r.User != nil {
			h.logger.Info().Str("user", r.User.Username).Str("user_id", r.User.ID).Msg("connected")
		}
	})
	s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		h.HandleMessage(ctx, s, m.Message)
	})
	s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		h.HandleInteraction(ctx, s, i.Interaction)
	})
}

// HandleMessage answers the setup command by posting the board with its
// buttons.
func (h *DiscordHandler) HandleMessage(ctx context.Context, api ChatAPI, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return
	}
	if strings.TrimSpace(m.Content) != h.prefix+"setup" {
		return
	}

	h.mu.Lock()
	reply := h.bot.Setup(ctx)
	h.mu.Unlock()

	msg := &discordgo.MessageSend{Content: reply.Message}
	if reply.Board != nil {
		msg.Embeds = []*discordgo.MessageEmbed{boardEmbed(*reply.Board)}
		msg.Components = buttons()
	}
	if _, err := api.ChannelMessageSendComplex(m.ChannelID, msg); err != nil {
		h.logger.Error().Err(err).Str("channel_id", m.ChannelID).Msg("send board")
		return
	}
	if reply.OK {
		h.logger.Info().Str("channel_id", m.ChannelID).Msg("board posted")
	}
}

// HandleInteraction handles a button press: the presser gets a private
// reply and the message carrying the buttons is redrawn.
func (h *DiscordHandler) HandleInteraction(ctx context.Context, api ChatAPI, i *discordgo.Interaction) {
	if i == nil || i.Type != discordgo.InteractionMessageComponent {
		return
	}
	user := interactionUser(i)
	if user == nil {
		return
	}

	input := dto.InteractionInput{UserID: user.ID}
	var action func(context.Context, dto.InteractionInput) dto.ReplyOutput
	switch i.MessageComponentData().CustomID {
	case dto.ButtonLogin:
		action = h.bot.Login
	case dto.ButtonLogout:
		action = h.bot.Logout
	default:
		return
	}

	h.mu.Lock()
	reply := action(ctx, input)
	h.seq++
	seq := h.seq
	h.mu.Unlock()

	err := api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply.Message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("respond to interaction")
	}

	if reply.Board == nil || i.Message == nil {
		return
	}
	h.refresh(api, i.Message, *reply.Board, seq)
}

// refresh edits the board message unless a newer board was already written
// to it.
func (h *DiscordHandler) refresh(api ChatAPI, msg *discordgo.Message, board dto.BoardOutput, seq uint64) {
	h.editMu.Lock()
	defer h.editMu.Unlock()
	if seq <= h.edited[msg.ID] {
		return
	}
	embeds := []*discordgo.MessageEmbed{boardEmbed(board)}
	edit := &discordgo.MessageEdit{ID: msg.ID, Channel: msg.ChannelID, Embeds: &embeds}
	if _, err := api.ChannelMessageEditComplex(edit); err != nil {
		h.logger.Error().Err(err).Str("message_id", msg.ID).Msg("refresh board")
		return
	}
	h.edited[msg.ID] = seq
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

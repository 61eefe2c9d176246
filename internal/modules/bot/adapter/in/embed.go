package in

import (
	"github.com/bwmarrin/discordgo"

	"worklog/internal/modules/bot/dto"
)

const embedColor = 0x3498db

func boardEmbed(board dto.BoardOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       board.Title,
		Description: board.Description,
		Color:       embedColor,
	}
	for _, s := range board.Sections {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: s.Name, Value: s.Value})
	}
	if board.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: board.Footer}
	}
	return embed
}

func buttons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Login", Style: discordgo.SuccessButton, CustomID: dto.ButtonLogin},
			discordgo.Button{Label: "Logout", Style: discordgo.DangerButton, CustomID: dto.ButtonLogout},
		}},
	}
}

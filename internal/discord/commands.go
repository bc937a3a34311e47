package discord

import "github.com/bwmarrin/discordgo"

// Slash command names.
const (
	cmdAdd     = "calendar_add"
	cmdEdit    = "calendar_edit"
	cmdList    = "calendar_list"
	cmdWeek    = "calendar_week"
	cmdRemove  = "calendar_remove"
	cmdClear   = "calendar_clear"
	cmdChannel = "calendar_channel"
)

// Option names.
const (
	optTitle    = "title"
	optDate     = "date"
	optTaskID   = "task_id"
	optNewTitle = "new_title"
	optNewDate  = "new_date"
	optChannel  = "channel"
)

// Commands returns the slash commands the bot registers.
func Commands() []*discordgo.ApplicationCommand {
	taskID := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        optTaskID,
		Description: "Task ID as shown in the planning",
		Required:    true,
		MinValue:    ptr(1.0),
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        cmdAdd,
			Description: "Add a task to the calendar (admin)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optTitle,
					Description: "What needs doing",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optDate,
					Description: "Due date as DD/MM/YYYY",
					Required:    true,
				},
			},
		},
		{
			Name:        cmdEdit,
			Description: "Change the title or date of a task (admin)",
			Options: []*discordgo.ApplicationCommandOption{
				taskID,
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optNewTitle,
					Description: "New title",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optNewDate,
					Description: "New date as DD/MM/YYYY",
				},
			},
		},
		{
			Name:        cmdList,
			Description: "Show every task",
		},
		{
			Name:        cmdWeek,
			Description: "Show this week's tasks",
		},
		{
			Name:        cmdRemove,
			Description: "Remove a task (admin)",
			Options:     []*discordgo.ApplicationCommandOption{taskID},
		},
		{
			Name:        cmdClear,
			Description: "Remove every task (admin)",
		},
		{
			Name:        cmdChannel,
			Description: "Post the auto-updating planning in a channel (admin)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         optChannel,
					Description:  "Channel receiving the planning",
					Required:     true,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
	}
}

func ptr[T any](v T) *T { return &v }

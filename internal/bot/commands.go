package bot

import "github.com/bwmarrin/discordgo"

var winnerChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Team A", Value: "A"},
	{Name: "Team B", Value: "B"},
}

var commandDefinitions = []*discordgo.ApplicationCommand{
	{
		Name:        "start_signup",
		Description: "Open a signup message players can join by reaction",
	},
	{
		Name:        "show_participants",
		Description: "List who has joined the current signup",
	},
	{
		Name:        "reset_participants",
		Description: "Clear the current signup's roster",
	},
	{
		Name:        "leave",
		Description: "Remove yourself from the current signup",
	},
	{
		Name:        "kick",
		Description: "Remove a player from the current signup",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Player to remove",
				Required:    true,
			},
		},
	},
	{
		Name:        "join_name",
		Description: "Add a participant without a Discord account",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Display name",
				Required:    true,
			},
		},
	},
	{
		Name:        "team",
		Description: "Split the signup roster into two point-balanced teams",
	},
	{
		Name:        "team_simple",
		Description: "Split the signup roster into two random teams",
	},
	{
		Name:        "result",
		Description: "Register a match result",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "winner",
				Description: "Winning side",
				Required:    true,
				Choices:     winnerChoices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "match_id",
				Description: "Match id (defaults to the latest match)",
			},
		},
	},
	{
		Name:        "win",
		Description: "Register the winning team of the latest match",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "team",
				Description: "Winning side",
				Required:    true,
				Choices:     winnerChoices,
			},
		},
	},
	{
		Name:        "set_points",
		Description: "Adjust the guild's points policy",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "win",
				Description: "Base points for a win",
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "loss",
				Description: "Base points for a loss (negative)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "streak_cap",
				Description: "Cap on the win-streak bonus",
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "loss_streak_cap",
				Description: "Cap on the loss-streak penalty",
			},
		},
	},
	{
		Name:        "show_points",
		Description: "Show the guild's points policy",
	},
	{
		Name:        "rank",
		Description: "Show the guild leaderboard",
	},
	{
		Name:        "set_strength",
		Description: "Set a player's points directly",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Player",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "points",
				Description: "New points value",
				Required:    true,
			},
		},
	},
	{
		Name:        "record",
		Description: "Override a player's win/loss record",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Player",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "wins",
				Description: "Total wins",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "losses",
				Description: "Total losses",
				Required:    true,
			},
		},
	},
	{
		Name:        "delete_user",
		Description: "Delete a player's rating record entirely",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Player",
				Required:    true,
			},
		},
	},
	{
		Name:        "start_lane_signup",
		Description: "Open a lane-based signup (pick a lane by reaction)",
	},
	{
		Name:        "result_team",
		Description: "Register a lane-team result by team ids",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "winteam",
				Description: "Winning team id",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "loseteam",
				Description: "Losing team id",
				Required:    true,
			},
		},
	},
	{
		Name:        "show_lane_history",
		Description: "Show recent lane teams with then-vs-now strength",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "count",
				Description: "How many teams to show (default 5)",
			},
		},
	},
	{
		Name:        "help",
		Description: "List available commands",
	},
}

package main

import (
	"context"
	"strings"

	"github.com/whyrusleeping/hellabot"

	"kgeyst.com/proddesc/pkg/common"
	"kgeyst.com/proddesc/pkg/proddesc/api"
	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

const describeCommand = "describe "

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

// In a channel: "<nick> describe red cotton t-shirt | comfortable, summer"
func mainImpl() error {
	config, err := common.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	logger := common.NewLogger(config.LogLevel, config.LogPath)
	descriptionAPI, err := api.NewAPI(context.Background(), config, logger)
	if err != nil {
		return err
	}
	nick := config.IRCNick
	ircBot, err := hbot.NewBot(config.IRCServer, nick)
	if err != nil {
		return err
	}
	var trigger = hbot.Trigger{
		Condition: func(b *hbot.Bot, m *hbot.Message) bool {
			return m.Command == "PRIVMSG" && len(m.To) > 0 && m.To[0] == '#'
		},
		Action: func(b *hbot.Bot, m *hbot.Message) bool {
			if !strings.HasPrefix(strings.ToLower(m.Content), strings.ToLower(nick)) {
				return false
			}
			what := strings.TrimSpace(m.Content[len(nick):])
			what = strings.TrimSpace(strings.TrimPrefix(what, ","))
			what = strings.TrimSpace(strings.TrimPrefix(what, ":"))
			if !strings.HasPrefix(what, describeCommand) {
				return false
			}
			attributes, keywords, _ := strings.Cut(what[len(describeCommand):], "|")
			keywords = strings.TrimSpace(keywords)
			var keywordsPtr *string
			if keywords != "" {
				keywordsPtr = &keywords
			}
			ctx := logger.With().Str("from", m.From).Str("channel", m.To).Logger().WithContext(context.Background())
			description, err := descriptionAPI.GenerateDescription(ctx, attributes, keywordsPtr)
			if err != nil {
				description = replyForError(err)
			}
			b.Reply(m, m.From+" "+description)
			return true
		},
	}
	ircBot.AddTrigger(trigger)
	ircBot.Channels = []string{config.IRCChannel}
	ircBot.Run()
	return nil
}

func replyForError(err error) string {
	if domain.HasCode(err, domain.ErrCodeValidation) {
		return "attributes must be 5 to 500 characters long"
	}
	return "I'm borked :("
}

// Package command parses slash commands typed into the chat input.
package command

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/logger"
)

// Parser matches chat input against slash-command patterns. Input that
// doesn't start with "/" is an ordinary message.
type Parser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
}

var (
	deleteRe = regexp.MustCompile(`(?i)^/(del|delete|rm)\s+(#?\d+)$`)
	volumeRe = regexp.MustCompile(`(?i)^/(vol|volume)\s+([+-]?)(\d{1,3})%?$`)
	searchRe = regexp.MustCompile(`(?i)^/(find|search)(?:\s+(.*))?$`)
)

// NewParser creates a slash-command parser.
func NewParser(log *logger.Logger) *Parser {
	p := &Parser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^/(add|brew|new)$`), domain.CommandAddRecipe},
		{regexp.MustCompile(`(?i)^/(group|sort)$`), domain.CommandGroupRecipes},
		{regexp.MustCompile(`(?i)^/(play|pause|music)$`), domain.CommandPlayPause},
		{regexp.MustCompile(`(?i)^/(mute|unmute)$`), domain.CommandMute},
		{regexp.MustCompile(`(?i)^/(chat)$`), domain.CommandChatTab},
		{regexp.MustCompile(`(?i)^/(recipes|grimoire|book)$`), domain.CommandRecipesTab},
		{regexp.MustCompile(`(?i)^/(about|team)$`), domain.CommandAbout},
		{regexp.MustCompile(`(?i)^/(close)$`), domain.CommandClose},
		{regexp.MustCompile(`(?i)^/(help|h|\?)$`), domain.CommandHelp},
		{regexp.MustCompile(`(?i)^/(quit|exit|q)$`), domain.CommandQuit},
	}
	return p
}

// Parse classifies one line of chat input. Plain text comes back as
// CommandNone with the untouched line as payload.
func (p *Parser) Parse(input string) domain.Command {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		return domain.Command{Type: domain.CommandNone, Payload: input}
	}

	p.log.Debug("parsing command: %q", trimmed)

	if m := deleteRe.FindStringSubmatch(trimmed); m != nil {
		return domain.Command{Type: domain.CommandDeleteRecipe, Payload: m[2]}
	}

	if m := searchRe.FindStringSubmatch(trimmed); m != nil {
		return domain.Command{Type: domain.CommandSearchRecipes, Payload: strings.TrimSpace(m[2])}
	}

	if m := volumeRe.FindStringSubmatch(trimmed); m != nil {
		v, _ := strconv.Atoi(m[3])
		cmd := domain.Command{Type: domain.CommandVolume, Payload: m[2] + m[3], Value: v}
		switch m[2] {
		case "+":
			cmd.Relative = true
		case "-":
			cmd.Relative = true
			cmd.Value = -v
		}
		return cmd
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched command: %s", rule.command)
			return domain.Command{Type: rule.command}
		}
	}

	p.log.Debug("no match, returning unknown command")
	return domain.Command{Type: domain.CommandUnknown, Payload: trimmed}
}

// Help lists the commands for the help line.
func Help() []string {
	return []string{
		"/add           brew a random recipe",
		"/del <id|#n>   delete a recipe by id or position",
		"/find [text]   filter the grimoire (no text clears)",
		"/find rarity:<tier>  show one tier (common, rare, epic, legendary)",
		"/group         group the grimoire by rarity",
		"/play          play or pause the music",
		"/mute          mute or unmute",
		"/vol <0-100>   set volume (or +N / -N)",
		"/chat /recipes switch tab",
		"/about         about the team",
		"/close         close the modal",
		"/quit          leave the workshop",
	}
}

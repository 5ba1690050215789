package domain

// CommandType classifies a line typed into the chat input.
type CommandType int

const (
	CommandNone      CommandType = iota // plain chat message
	CommandUnknown                      // looked like a command, wasn't one
	CommandAddRecipe
	CommandDeleteRecipe
	CommandSearchRecipes
	CommandGroupRecipes
	CommandPlayPause
	CommandMute
	CommandVolume
	CommandChatTab
	CommandRecipesTab
	CommandAbout
	CommandClose
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandAddRecipe:
		return "add_recipe"
	case CommandDeleteRecipe:
		return "delete_recipe"
	case CommandSearchRecipes:
		return "search_recipes"
	case CommandGroupRecipes:
		return "group_recipes"
	case CommandPlayPause:
		return "play_pause"
	case CommandMute:
		return "mute"
	case CommandVolume:
		return "volume"
	case CommandChatTab:
		return "chat_tab"
	case CommandRecipesTab:
		return "recipes_tab"
	case CommandAbout:
		return "about"
	case CommandClose:
		return "close"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a parsed chat-input line.
type Command struct {
	Type    CommandType
	Payload string // raw argument, or the whole line for CommandNone/CommandUnknown

	// Volume commands: Value is absolute unless Relative is set.
	Value    int
	Relative bool
}

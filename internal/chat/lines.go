// Package chat: lines.go centralises everything Arcanum says.
// Edit this file to change the alchemist's personality.
package chat

// AlchemistName is how the automated responder signs its messages.
const AlchemistName = "Arcanum"

// LineGreeting seeds every new conversation.
func LineGreeting() string {
	return "🔮 Greetings, young alchemist! I am Arcanum, your mystical brewing companion. What magical concoction shall we create today? ✨"
}

// responses is the fixed set a reply is drawn from. Order matters for
// tests that inject a deterministic RandSource.
var responses = []string{
	"⚗️ Fascinating! For this mystical brew, you'll need special ingredients from the Enchanted Forest. The combination creates powerful magical energies! ✨",
	"🔮 Ah, a classic combination! These ingredients resonate with ancient magic. Mix under moonlight for maximum potency. Success rate: 87% 🌙",
	"✨ Excellent selection! This legendary formula was discovered in the Crystal Caverns. Handle with extreme care - the magical essence is volatile! 💎",
	"🌟 Marvelous choice! This potion will channel the very essence of the elements through your being. Prepare for extraordinary magical enhancement! 🔥⚡🌊",
	"🪄 Intriguing! These components create a harmony of magical forces. The resulting elixir will grant you temporary mastery over arcane energies! ⭐",
}

// Responses returns a copy of the canned reply set.
func Responses() []string {
	return append([]string(nil), responses...)
}

// LineBrewing is shown next to the typing spinner.
func LineBrewing() string {
	return AlchemistName + " is brewing a reply..."
}

// LineStillBrewing explains why a send was refused under the single-slot policy.
func LineStillBrewing() string {
	return "Patience! " + AlchemistName + " is still stirring the last cauldron."
}

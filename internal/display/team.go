package display

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
)

// teamMarkdown is the about-the-team content. It plays the part of the
// intro reel: nothing is shown until it has been rendered.
const teamMarkdown = `# The Workshop Circle

*Keepers of the cauldron, tenders of the grimoire.*

## Arcanum
**Resident alchemist.** Answers every question with great confidence and
occasional accuracy. Has never once let a potion boil over.

## Mirelle Ashgrove
**Herbalist.** Sources moonbell petals by night and shadow moss by
even-later night. Labels every jar twice.

## Tobin Quill
**Archivist.** Keeps the grimoire in order and quietly removes the recipes
that exploded.

## Sable & Ember
**Familiars.** One guards the ingredient shelf. The other guards the first
one. Both accept tribute in dried fish.

---

> Every recipe in this workshop was tested on volunteers. Mostly Tobin.
`

type teamKey struct {
	skin  string
	width int
}

// teamRenderer renders the team bios with glamour and remembers the result
// per skin and width, so reopening the modal or resizing back is instant.
type teamRenderer struct {
	cache *lru.Cache[teamKey, string]
}

func newTeamRenderer(size int) (*teamRenderer, error) {
	cache, err := lru.New[teamKey, string](size)
	if err != nil {
		return nil, err
	}
	return &teamRenderer{cache: cache}, nil
}

// Render returns the bios word-wrapped to width using the skin's style.
// Safe to call from a tea.Cmd goroutine.
func (t *teamRenderer) Render(skin Skin, width int) (string, error) {
	k := teamKey{skin: skin.Name, width: width}
	if out, ok := t.cache.Get(k); ok {
		return out, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(skin.Glamour),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(teamMarkdown)
	if err != nil {
		return "", fmt.Errorf("rendering team bios: %w", err)
	}

	t.cache.Add(k, out)
	return out, nil
}

// Len reports how many renderings are cached.
func (t *teamRenderer) Len() int {
	return t.cache.Len()
}

package domain

import (
	"errors"
	"testing"
)

func TestParseRarity(t *testing.T) {
	tests := []struct {
		in      string
		want    Rarity
		wantErr bool
	}{
		{"Common", RarityCommon, false},
		{"rare", RarityRare, false},
		{"  EPIC ", RarityEpic, false},
		{"legendary", RarityLegendary, false},
		{"mythic", RarityCommon, true},
		{"", RarityCommon, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRarity(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRarity) {
					t.Fatalf("expected ErrInvalidRarity, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRecipeCloneDoesNotAlias(t *testing.T) {
	r := &Recipe{ID: 1, Name: "Test", Ingredients: []string{"a", "b"}}
	c := r.Clone()
	c.Ingredients[0] = "changed"
	if r.Ingredients[0] != "a" {
		t.Fatalf("clone aliased ingredients: %v", r.Ingredients)
	}
}

func TestAudioStateEffectiveVolume(t *testing.T) {
	s := AudioState{Volume: 70}
	if s.EffectiveVolume() != 70 {
		t.Fatalf("expected 70, got %d", s.EffectiveVolume())
	}
	s.IsMuted = true
	if s.EffectiveVolume() != 0 {
		t.Fatalf("expected 0 while muted, got %d", s.EffectiveVolume())
	}
	if s.Volume != 70 {
		t.Fatal("muting must not touch the stored volume")
	}
}

package utils

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"arcanaAPI/internal/types/reading"
)

var majorArcana = []string{
	"The Fool", "The Magician", "The High Priestess", "The Empress",
	"The Emperor", "The Hierophant", "The Lovers", "The Chariot",
	"Strength", "The Hermit", "Wheel of Fortune", "Justice",
	"The Hanged Man", "Death", "Temperance", "The Devil",
	"The Tower", "The Star", "The Moon", "The Sun",
	"Judgement", "The World",
}

var minorSuits = []string{"wands", "cups", "swords", "pentacles"}

var minorRanks = []string{
	"Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Page", "Knight", "Queen", "King",
}

// GenerateTarotDeck builds the full 78-card deck: 22 major arcana
// followed by 14 cards in each of the four minor suits.
func GenerateTarotDeck() []reading.Card {
	deck := make([]reading.Card, 0, 78)

	for i, name := range majorArcana {
		deck = append(deck, reading.Card{
			Name:   name,
			Arcana: "major",
			Number: i,
		})
	}

	for _, suit := range minorSuits {
		for i, rank := range minorRanks {
			deck = append(deck, reading.Card{
				Name:   fmt.Sprintf("%s of %s", rank, suitName(suit)),
				Arcana: "minor",
				Suit:   suit,
				Rank:   rank,
				Number: i + 1,
			})
		}
	}

	return deck
}

func suitName(s string) string {
	switch s {
	case "wands":
		return "Wands"
	case "cups":
		return "Cups"
	case "swords":
		return "Swords"
	case "pentacles":
		return "Pentacles"
	default:
		return "Wands"
	}
}

// CardOfDay draws the user's card for one UTC calendar day. The draw is
// seeded from (user, date) so repeated calls on the same day always
// return the same card and orientation.
func CardOfDay(userID uuid.UUID, day time.Time) (reading.Card, bool) {
	h := fnv.New64a()
	h.Write(userID[:])
	h.Write([]byte(day.UTC().Format("2006-01-02")))

	r := rand.New(rand.NewSource(int64(h.Sum64())))

	deck := GenerateTarotDeck()
	card := deck[r.Intn(len(deck))]
	reversed := r.Intn(2) == 1

	return card, reversed
}

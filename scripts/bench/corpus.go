// corpus.go — Synthetic conversation generator shared by the bench
// harnesses. The journal is in-memory only, so every harness seeds its
// own corpus; identical rng seeds yield identical corpora.
package main

import (
	"fmt"
	"math/rand"
)

// Item pool with realistic distribution (Zipf-like: few items appear
// on most lists, the long tail appears rarely).
var groceryItems = []string{
	"milk", "bread", "butter", "cheese", "coffee", "rice", "pasta",
	"honey", "apples", "bananas", "spinach", "tomatoes", "onions",
	"garlic", "chicken", "salmon", "yogurt", "granola", "lentils",
	"flour", "sugar", "oatmeal", "peppers", "mushrooms", "cereal",
	"stamps", "batteries", "lightbulbs", "sunscreen", "toothpaste",
	"shampoo", "napkins", "detergent",
}

var people = []string{"Sarah", "Alex", "Sam", "Maya", "Leo", "Priya", "Noah", "Jordan"}

var topics = []string{"mountain", "beach", "camping", "museum", "harbor"}

var streets = []string{"Pine", "Maple", "Cedar", "Oak", "Birch"}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var outings = []string{"movie", "concert", "game", "show", "recital"}

// listQueries exercise the broad list-query branch end to end.
var listQueries = []string{
	"What's on my shopping list?",
	"What should I buy?",
	"What's on the grocery list?",
	"What is my to-do list?",
}

// tokenQueries exercise the tokenized matching branch against note
// content.
var tokenQueries = []string{
	"dentist appointment",
	"camping trip",
	"pasta place",
	"weekend plans",
	"concert last night",
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

// pickItem picks a list item with a Zipf-ish skew so a handful of
// staples repeat across the corpus and de-duplication gets exercised.
func pickItem(rng *rand.Rand) string {
	idx := int(float64(len(groceryItems)) * (float64(rng.Intn(100)) / 100.0) * (float64(rng.Intn(100)) / 100.0))
	if idx >= len(groceryItems) {
		idx = len(groceryItems) - 1
	}
	return groceryItems[idx]
}

// syntheticAdd returns a message that lands on the add path and yields
// at least one extracted item.
func syntheticAdd(rng *rand.Rand) string {
	switch rng.Intn(6) {
	case 0:
		return fmt.Sprintf("Add %s and %s to my shopping list", pickItem(rng), pickItem(rng))
	case 1:
		return fmt.Sprintf("Put %s and %s on the grocery list", pickItem(rng), pickItem(rng))
	case 2:
		return fmt.Sprintf("Add %s, %s and %s to the shopping list", pickItem(rng), pickItem(rng), pickItem(rng))
	case 3:
		return fmt.Sprintf("Buy %s and %s at the supermarket", pickItem(rng), pickItem(rng))
	case 4:
		return fmt.Sprintf("Need %s from the grocery store", pickItem(rng))
	default:
		return fmt.Sprintf("Put %s on my to-do list", pickItem(rng))
	}
}

// syntheticNote returns a message that lands on the note path: no add
// verbs paired with list nouns, no list-query phrases.
func syntheticNote(rng *rand.Rand) string {
	switch rng.Intn(6) {
	case 0:
		return fmt.Sprintf("Met %s for lunch, we talked about the %s trip", pick(rng, people), pick(rng, topics))
	case 1:
		return fmt.Sprintf("%s recommended the new %s place on %s Street", pick(rng, people), pick(rng, topics), pick(rng, streets))
	case 2:
		return fmt.Sprintf("Dentist appointment %s at noon", pick(rng, weekdays))
	case 3:
		return fmt.Sprintf("The %s last night was fantastic", pick(rng, outings))
	case 4:
		return fmt.Sprintf("Finished reading that book about %s birds", pick(rng, topics))
	default:
		return fmt.Sprintf("%s called about the weekend plans", pick(rng, people))
	}
}

// syntheticMessage returns one synthetic conversational turn. Roughly
// sixty percent are list adds, the rest plain notes.
func syntheticMessage(rng *rand.Rand) string {
	if rng.Intn(10) < 6 {
		return syntheticAdd(rng)
	}
	return syntheticNote(rng)
}

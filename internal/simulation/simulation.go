package simulation

import (
	"fmt"

	"draft-order/internal/constants"
)

type Entrant struct {
	Name  string
	Email string
	Guess int
}

var namePool = []struct{ name, email string }{
	{"Mike Johnson", "mike.johnson@email.com"},
	{"Sarah Davis", "sarah.davis@gmail.com"},
	{"Alex Thompson", "alex.thompson@yahoo.com"},
	{"Jessica Wilson", "jessica.wilson@hotmail.com"},
	{"Ryan Martinez", "ryan.martinez@email.com"},
	{"Ashley Brown", "ashley.brown@gmail.com"},
	{"David Lee", "david.lee@yahoo.com"},
	{"Amanda Taylor", "amanda.taylor@email.com"},
	{"Chris Anderson", "chris.anderson@gmail.com"},
	{"Lauren Garcia", "lauren.garcia@hotmail.com"},
	{"Justin Miller", "justin.miller@email.com"},
	{"Nicole Rodriguez", "nicole.rodriguez@gmail.com"},
	{"Brandon White", "brandon.white@yahoo.com"},
	{"Stephanie Clark", "stephanie.clark@email.com"},
	{"Kevin Lopez", "kevin.lopez@gmail.com"},
	{"Emily Carter", "emily.carter@email.com"},
	{"Tyler Moore", "tyler.moore@gmail.com"},
	{"Rachel Green", "rachel.green@yahoo.com"},
	{"Jason Scott", "jason.scott@hotmail.com"},
	{"Megan Turner", "megan.turner@email.com"},
	{"Derek Hall", "derek.hall@gmail.com"},
	{"Brittany Adams", "brittany.adams@yahoo.com"},
	{"Sean Parker", "sean.parker@email.com"},
	{"Vanessa King", "vanessa.king@gmail.com"},
	{"Logan Wright", "logan.wright@hotmail.com"},
	{"Kayla Mitchell", "kayla.mitchell@email.com"},
	{"Trevor Phillips", "trevor.phillips@gmail.com"},
	{"Samantha Young", "samantha.young@yahoo.com"},
	{"Marcus Allen", "marcus.allen@email.com"},
	{"Natalie Brooks", "natalie.brooks@gmail.com"},
}

func PoolSize() int {
	return len(namePool)
}

// Generate returns n synthetic entrants with guesses in
// [SimulatedGuessMin, SimulatedGuessMax]. intn must behave like rand.IntN.
func Generate(n int, intn func(int) int) []Entrant {
	span := constants.SimulatedGuessMax - constants.SimulatedGuessMin + 1

	out := make([]Entrant, 0, n)
	for i := range n {
		e := Entrant{Guess: constants.SimulatedGuessMin + intn(span)}
		if i < len(namePool) {
			e.Name, e.Email = namePool[i].name, namePool[i].email
		} else {
			e.Name = fmt.Sprintf("Player %d", i+1)
			e.Email = fmt.Sprintf("player%d@testleague.com", i+1)
		}
		out = append(out, e)
	}
	return out
}

// QuickTest is a fixed five-player round: average 300, target 200, Eve wins.
var QuickTest = []Entrant{
	{Name: "Alice", Email: "alice@test.com", Guess: 300},
	{Name: "Bob", Email: "bob@test.com", Guess: 250},
	{Name: "Charlie", Email: "charlie@test.com", Guess: 400},
	{Name: "Diana", Email: "diana@test.com", Guess: 350},
	{Name: "Eve", Email: "eve@test.com", Guess: 200},
}

// Seeder loads a small group-stage schedule and player list into Postgres,
// then replays the opening matchday results through the API so the engine
// has live ratings to work with.
package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var (
	apiURL = flag.String("api", "http://localhost:8080/api/v1/results", "results endpoint")
	pgURL  = flag.String("pg", os.Getenv("POSTGRES_URL"), "postgres url")
)

type fixture struct {
	id       string
	home     string
	away     string
	venue    string
	matchday int
	daysAgo  int
	// result for matchday 1 fixtures
	homeGoals, awayGoals int
	finished             bool
}

type player struct {
	name     string
	team     string
	position string
	overall  float64
}

var fixtures = []fixture{
	{id: "ucl-0001", home: "Real Madrid", away: "Liverpool", venue: "Santiago Bernabeu", matchday: 1, daysAgo: 21, homeGoals: 2, awayGoals: 1, finished: true},
	{id: "ucl-0002", home: "Manchester City", away: "Bayern Munich", venue: "Etihad Stadium", matchday: 1, daysAgo: 21, homeGoals: 1, awayGoals: 1, finished: true},
	{id: "ucl-0003", home: "Barcelona", away: "Inter", venue: "Camp Nou", matchday: 1, daysAgo: 20, homeGoals: 3, awayGoals: 0, finished: true},
	{id: "ucl-0004", home: "Arsenal", away: "PSG", venue: "Emirates Stadium", matchday: 1, daysAgo: 20, homeGoals: 2, awayGoals: 0, finished: true},
	{id: "ucl-0005", home: "Liverpool", away: "Barcelona", venue: "Anfield", matchday: 2, daysAgo: -7},
	{id: "ucl-0006", home: "Bayern Munich", away: "Real Madrid", venue: "Allianz Arena", matchday: 2, daysAgo: -7},
	{id: "ucl-0007", home: "PSG", away: "Manchester City", venue: "Parc des Princes", matchday: 2, daysAgo: -8},
	{id: "ucl-0008", home: "Inter", away: "Arsenal", venue: "San Siro", matchday: 2, daysAgo: -8},
}

var players = []player{
	{name: "Kylian Mbappe", team: "Real Madrid", position: "FWD", overall: 91},
	{name: "Erling Haaland", team: "Manchester City", position: "FWD", overall: 91},
	{name: "Mohamed Salah", team: "Liverpool", position: "FWD", overall: 89},
	{name: "Jude Bellingham", team: "Real Madrid", position: "MID", overall: 90},
	{name: "Rodri", team: "Manchester City", position: "MID", overall: 89},
	{name: "Virgil van Dijk", team: "Liverpool", position: "DEF", overall: 89},
	{name: "William Saliba", team: "Arsenal", position: "DEF", overall: 86},
	{name: "Alisson", team: "Liverpool", position: "GK", overall: 89},
}

func main() {
	flag.Parse()
	if *pgURL == "" {
		log.Fatal("POSTGRES_URL or -pg is required")
	}

	db, err := sql.Open("postgres", *pgURL)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	defer db.Close()

	for _, f := range fixtures {
		date := time.Now().AddDate(0, 0, -f.daysAgo)
		_, err := db.Exec(`
			INSERT INTO matches (id, home_team, away_team, date, venue, stage, matchday, status)
			VALUES ($1, $2, $3, $4, $5, 'group', $6, 'SCHEDULED')
			ON CONFLICT (id) DO NOTHING
		`, f.id, f.home, f.away, date, f.venue, f.matchday)
		if err != nil {
			log.Fatalf("insert match %s: %v", f.id, err)
		}
	}
	log.Printf("seeded %d matches", len(fixtures))

	for _, p := range players {
		_, err := db.Exec(`
			INSERT INTO players (name, team, position, overall_rating)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
		`, p.name, p.team, p.position, p.overall)
		if err != nil {
			log.Fatalf("insert player %s: %v", p.name, err)
		}
	}
	log.Printf("seeded %d players", len(players))

	// Replay the finished fixtures through the API so the running server's
	// engine picks them up the same way live results arrive.
	for _, f := range fixtures {
		if !f.finished {
			continue
		}
		payload, _ := json.Marshal(map[string]any{
			"match_id":   f.id,
			"home_goals": f.homeGoals,
			"away_goals": f.awayGoals,
		})
		resp, err := http.Post(*apiURL, "application/json", bytes.NewReader(payload))
		if err != nil {
			log.Fatalf("post result %s: %v", f.id, err)
		}
		if resp.StatusCode != http.StatusOK {
			log.Fatalf("post result %s: status %s", f.id, resp.Status)
		}
		resp.Body.Close()
		fmt.Printf("applied %s %s %d-%d %s\n", f.id, f.home, f.homeGoals, f.awayGoals, f.away)
	}
}

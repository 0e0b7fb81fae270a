// Command seed loads Premier League team data into the store, upserting by
// team name. With API_FOOTBALL_KEY set it pulls the current season's teams
// from the football data API; otherwise it falls back to a built-in fixture
// list so local environments can be seeded offline.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"loantrack/config"
	"loantrack/models"
)

const (
	apiBaseURL      = "https://v3.football.api-sports.io"
	premierLeagueID = "39"
)

type teamsAPIResponse struct {
	Response []struct {
		Team struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"team"`
	} `json:"response"`
}

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	names, err := fetchTeamNames()
	if err != nil {
		log.Printf("API fetch failed (%v), using built-in fixture list", err)
		names = fallbackTeams
	}

	for _, name := range names {
		team := models.Team{Name: name, Coach: "Unknown"}
		err := config.DB.Where("name = ?", name).FirstOrCreate(&team).Error
		if err != nil {
			log.Fatalf("Failed to seed team %q: %v", name, err)
		}
		log.Printf("Team %s processed.", name)
	}
	log.Println("Teams data loaded successfully.")
}

func fetchTeamNames() ([]string, error) {
	apiKey := os.Getenv("API_FOOTBALL_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("API_FOOTBALL_KEY not set")
	}

	season := time.Now().Year()
	url := fmt.Sprintf("%s/teams?league=%s&season=%d", apiBaseURL, premierLeagueID, season)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", apiKey)
	req.Header.Set("x-rapidapi-host", "v3.football.api-sports.io")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload teamsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.Response) == 0 {
		return nil, fmt.Errorf("no teams data received from API")
	}

	names := make([]string, 0, len(payload.Response))
	for _, entry := range payload.Response {
		names = append(names, entry.Team.Name)
	}
	return names, nil
}

var fallbackTeams = []string{
	"Arsenal",
	"Aston Villa",
	"Bournemouth",
	"Brentford",
	"Brighton",
	"Chelsea",
	"Crystal Palace",
	"Everton",
	"Fulham",
	"Liverpool",
	"Manchester City",
	"Manchester United",
	"Newcastle",
	"Nottingham Forest",
	"Tottenham",
	"West Ham",
	"Wolves",
}

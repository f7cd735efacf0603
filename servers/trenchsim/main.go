// servers/trenchsim/main.go
// trenchsim serves a simulated Trench mission API for local development.
package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/mwiater/trench/internal/sim"
)

func main() {
	scenarioPath := flag.String("scenario", "servers/trenchsim/scenario.yml", "path to the scenario YAML file")
	flag.Parse()

	scenario, err := sim.LoadScenario(*scenarioPath)
	if err != nil {
		log.Fatalf("scenario error: %v", err)
	}

	engine := sim.NewEngine(scenario)
	server := sim.NewServer(engine, scenario.Token)

	srv := &http.Server{
		Addr:              scenario.Addr(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("trenchsim scenario: name=%s epoch=%s clock=%gx satellites=%d stations=%d passes=%d",
		scenario.Name, scenario.EpochStart, scenario.ClockSpeed,
		len(scenario.Satellites), len(scenario.Stations), len(scenario.Passes))
	if scenario.Token == "" {
		log.Printf("trenchsim auth: disabled (no token in scenario)")
	}
	log.Printf("listening on %s", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}

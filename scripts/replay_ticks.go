// replay_ticks.go replays recorded position/velocity ticks against a running
// Helm API and prints the steering returned for each.
//
// Usage:
//
//	go run scripts/replay_ticks.go -ticks laps.csv -api http://localhost:8700 -vehicle car-1
//
// The CSV has a header row and two columns: position,velocity.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

type tick struct {
	Position float64 `json:"position"`
	Velocity float64 `json:"velocity"`
}

type decision struct {
	Steering  float64 `json:"steering"`
	LatencyUs int64   `json:"latency_us"`
}

func main() {
	ticksPath := flag.String("ticks", "ticks.csv", "path to CSV of position,velocity rows")
	apiURL := flag.String("api", "http://localhost:8700", "Helm API base URL")
	vehicleID := flag.String("vehicle", "replay", "X-Vehicle-ID header value")
	interval := flag.Duration("interval", 0, "pause between ticks")
	dryRun := flag.Bool("dry-run", false, "print ticks without posting")
	flag.Parse()

	f, err := os.Open(*ticksPath)
	if err != nil {
		log.Fatalf("open ticks: %v", err)
	}
	defer f.Close()

	ticks, err := readTicks(f)
	if err != nil {
		log.Fatalf("read ticks: %v", err)
	}
	log.Printf("parsed %d ticks from %s", len(ticks), *ticksPath)

	if *dryRun {
		for i, t := range ticks {
			fmt.Printf("[%d] position=%.4f velocity=%.4f\n", i+1, t.Position, t.Velocity)
		}
		return
	}

	client := &http.Client{Timeout: 5 * time.Second}
	sent, rejected := 0, 0
	for i, t := range ticks {
		body, _ := json.Marshal(t)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/steer", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Vehicle-ID", *vehicleID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("tick %d: %v", i+1, err)
			rejected++
			continue
		}
		var d decision
		decodeErr := json.NewDecoder(resp.Body).Decode(&d)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK || decodeErr != nil {
			log.Printf("tick %d: status %d", i+1, resp.StatusCode)
			rejected++
			continue
		}
		sent++
		fmt.Printf("%.4f,%.4f,%.4f,%d\n", t.Position, t.Velocity, d.Steering, d.LatencyUs)
		if *interval > 0 {
			time.Sleep(*interval)
		}
	}

	log.Printf("done: %d steered, %d rejected", sent, rejected)
}

func readTicks(r io.Reader) ([]tick, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	var ticks []tick
	for i, rec := range records[1:] {
		pos, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d position: %w", i+2, err)
		}
		vel, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d velocity: %w", i+2, err)
		}
		ticks = append(ticks, tick{Position: pos, Velocity: vel})
	}
	return ticks, nil
}

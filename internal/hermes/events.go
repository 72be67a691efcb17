package hermes

import "time"

// ReadingEvent is a tick sent by a vehicle over NATS instead of HTTP.
type ReadingEvent struct {
	Position float64 `json:"position"`
	Velocity float64 `json:"velocity"`
}

type SteeringDecidedEvent struct {
	DecisionID string             `json:"decision_id"`
	VehicleID  string             `json:"vehicle_id"`
	Position   float64            `json:"position"`
	Velocity   float64            `json:"velocity"`
	Steering   float64            `json:"steering"`
	Terms      map[string]float64 `json:"terms,omitempty"`
	LatencyUs  int64              `json:"latency_us"`
	Timestamp  time.Time          `json:"timestamp"`
}

type SteeringRejectedEvent struct {
	VehicleID string    `json:"vehicle_id"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

type EngineReadyEvent struct {
	Engine      string    `json:"engine"`
	Rules       int       `json:"rules"`
	Defuzzifier string    `json:"defuzzifier"`
	Resolution  int       `json:"resolution"`
	Timestamp   time.Time `json:"timestamp"`
}

type StatsEvent struct {
	Decisions    int64     `json:"decisions"`
	Rejected     int64     `json:"rejected"`
	MeanSteering float64   `json:"mean_steering"`
	MeanAbs      float64   `json:"mean_abs_steering"`
	AvgUs        float64   `json:"avg_latency_us"`
	Timestamp    time.Time `json:"timestamp"`
}

package hermes

const (
	// SubjectReadings matches readings published by vehicles for steering.
	SubjectReadings    = "helm.steering.*.reading"
	SubjectSteerStats  = "helm.steering.stats"
	SubjectEngineReady = "helm.engine.ready"

	StreamName   = "HELM_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectReading(vehicleID string) string { return "helm.steering." + vehicleID + ".reading" }
func SubjectDecided(vehicleID string) string { return "helm.steering." + vehicleID + ".decided" }
func SubjectRejected(vehicleID string) string {
	return "helm.steering." + vehicleID + ".rejected"
}

// VehicleFromSubject extracts the vehicle token of a helm.steering.<vehicle>.<event>
// subject. It returns "" for any other subject.
func VehicleFromSubject(subject string) string {
	const prefix = "helm.steering."
	if len(subject) <= len(prefix) || subject[:len(prefix)] != prefix {
		return ""
	}
	rest := subject[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '.' {
			return rest[:i]
		}
	}
	return ""
}

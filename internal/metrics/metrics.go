package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tamzrod/rtk-status/internal/status"
)

var (
	OperatingMode = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rtkstatus_operating_mode",
		Help: "Current operating mode (numeric OperatingMode value)",
	})

	DisplayScreen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rtkstatus_display_screen",
		Help: "Screen currently selected for rendering",
	})

	LinkState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rtkstatus_link_state",
		Help: "Current radio link state (numeric LinkState value)",
	})

	PeripheralOnline = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rtkstatus_peripheral_online",
		Help: "1 when the peripheral is online",
	}, []string{"peripheral"})

	SurveyElapsedSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rtkstatus_survey_elapsed_seconds",
		Help: "Elapsed time of the running survey-in",
	})

	SurveyRestartsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rtkstatus_survey_restarts_total",
		Help: "Survey-in restarts triggered by the watchdog",
	})

	ModeTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rtkstatus_mode_transitions_total",
		Help: "Operating mode changes by target mode",
	}, []string{"to"})

	NMEASentencesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rtkstatus_nmea_sentences_total",
		Help: "NMEA sentences parsed by type",
	}, []string{"type"})

	NMEAErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rtkstatus_nmea_errors_total",
		Help: "NMEA lines that failed to parse",
	})

	StatusWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rtkstatus_status_writes_total",
		Help: "Status block writes by result",
	}, []string{"result"})
)

// Observe publishes a status snapshot into the gauges.
func Observe(s status.Snapshot) {
	OperatingMode.Set(float64(s.Mode))
	DisplayScreen.Set(float64(s.Screen))
	LinkState.Set(float64(s.Link))
	SurveyElapsedSeconds.Set(float64(s.SurveySeconds))

	for _, p := range status.AllPeripherals() {
		v := 0.0
		if s.Peripherals&(1<<uint(p)) != 0 {
			v = 1
		}
		PeripheralOnline.WithLabelValues(p.String()).Set(v)
	}
}

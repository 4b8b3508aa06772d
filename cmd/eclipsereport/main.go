package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/MichaelBonnet/astrodyn"
	"github.com/gonum/matrix/mat64"
	"github.com/spf13/viper"
)

// This code only reads a scenario file and reports the eclipse intervals of
// the configured object over the requested window, plus sun exclusion zone
// entries and exits for any configured sensors.

const (
	defaultScenario = "~~unset~~"
	dateFormat      = "2006-01-02 15:04:05"
)

var (
	scenario string
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	// Load scenario
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	// Read window parameters
	startDT := confReadTime("window.start")
	endDT := confReadTime("window.end")
	step := viper.GetDuration("window.step")
	if step == 0 {
		step = time.Minute
	}
	if verbose {
		log.Printf("[conf] window: %s -> %s step %s\n", startDT, endDT, step)
	}

	// Read object
	name := viper.GetString("object.name")
	line1 := viper.GetString("object.tle1")
	line2 := viper.GetString("object.tle2")
	tle, err := astrodyn.ParseTLELines(line1, line2)
	if err != nil {
		log.Fatalf("invalid TLE for `%s`: %s", name, err)
	}
	prop, err := astrodyn.NewSGP4(tle)
	if err != nil {
		log.Fatalf("could not initialize propagator: %s", err)
	}
	eph, err := astrodyn.NewSunEphemerisFromConfig()
	if err != nil {
		log.Fatalf("could not initialize ephemeris: %s", err)
	}
	sc, err := astrodyn.NewSpacecraft(name, tle, prop, eph)
	if err != nil {
		log.Fatalf("could not create spacecraft: %s", err)
	}

	// Optional sensors, checked against the Sun with the body frame locked
	// to LVLH.
	var sensorConfs []struct {
		Name           string
		Boresight      []float64
		SunExclusion   float64
		EarthExclusion float64
		FOV            float64
		Range          float64
	}
	if err := viper.UnmarshalKey("sensors", &sensorConfs); err != nil {
		log.Fatalf("could not read sensors: %s", err)
	}
	for _, conf := range sensorConfs {
		sensor, err := astrodyn.NewSensor(conf.Name, conf.Boresight, conf.SunExclusion, conf.EarthExclusion, conf.FOV, conf.Range)
		if err != nil {
			log.Fatalf("invalid sensor `%s`: %s", conf.Name, err)
		}
		if err = sc.AddSensor(sensor); err != nil {
			log.Fatalf("could not mount sensor `%s`: %s", conf.Name, err)
		}
	}
	checkSensors := len(sensorConfs) > 0

	inEclipse := false
	violated := map[string]bool{}
	for dt := startDT; !dt.After(endDT); dt = dt.Add(step) {
		if err := sc.UpdateState(dt); err != nil {
			log.Fatalf("propagation failed at %s: %s", dt, err)
		}
		eclipsed, err := sc.IsInEclipse()
		if err != nil {
			log.Fatalf("eclipse check failed at %s: %s", dt, err)
		}
		if eclipsed != inEclipse {
			inEclipse = eclipsed
			if eclipsed {
				log.Printf("%s: %s enters shadow\n", dt.Format(dateFormat), name)
			} else {
				log.Printf("%s: %s exits shadow\n", dt.Format(dateFormat), name)
			}
		}
		if !checkSensors {
			continue
		}
		// Express the checks in LVLH with a body frame locked to it.
		rTEME, err := sc.PositionTEME()
		if err != nil {
			log.Fatalf("state read failed at %s: %s", dt, err)
		}
		vTEME, err := sc.VelocityTEME()
		if err != nil {
			log.Fatalf("state read failed at %s: %s", dt, err)
		}
		lvlh, err := astrodyn.LVLHRotation(rTEME, vTEME)
		if err != nil {
			log.Fatalf("LVLH rotation failed at %s: %s", dt, err)
		}
		hits, err := sc.CheckSensorSunExclusionZones(astrodyn.TEME, transposed(lvlh))
		if err != nil {
			log.Fatalf("exclusion check failed at %s: %s", dt, err)
		}
		now := map[string]bool{}
		for _, hit := range hits {
			now[hit] = true
			if !violated[hit] {
				log.Printf("%s: sensor %s enters sun exclusion zone\n", dt.Format(dateFormat), hit)
			}
		}
		for hit := range violated {
			if !now[hit] {
				log.Printf("%s: sensor %s exits sun exclusion zone\n", dt.Format(dateFormat), hit)
			}
		}
		violated = now
	}
}

// transposed returns the inverse of an orthonormal rotation.
func transposed(m *mat64.Dense) *mat64.Dense {
	var t mat64.Dense
	t.Clone(m.T())
	return &t
}

func confReadTime(key string) time.Time {
	dt, err := time.ParseInLocation(dateFormat, viper.GetString(key), time.UTC)
	if err != nil {
		log.Fatalf("could not read %s: %s", key, err)
	}
	return dt
}

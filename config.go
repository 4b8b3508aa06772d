package astrodyn

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _config{}
)

// _config is a "hidden" struct, just use `astrodynConfig`
type _config struct {
	VSOP87, DE bool
	VSOP87Dir  string
	DEFile     string
	outputDir  string
}

// astrodynConfig returns the astrodyn configuration.
func astrodynConfig() _config {
	if cfgLoaded {
		return config
	}
	// Load the configuration file
	confPath := os.Getenv("ASTRODYN_CONFIG")
	if confPath == "" {
		panic("environment variable `ASTRODYN_CONFIG` is missing or empty")
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("%s/conf.toml not found", confPath))
	}

	vsop87Enabled := viper.GetBool("VSOP87.enabled")
	vsop87Dir := viper.GetString("VSOP87.directory")
	deEnabled := viper.GetBool("DE.enabled")
	deFile := viper.GetString("DE.file")
	outputDir := viper.GetString("general.output_path")

	if vsop87Enabled && deEnabled {
		panic("both VSOP87 and DE are enabled, please make up your mind (DE is more precise)")
	}
	cfgLoaded = true
	config = _config{VSOP87: vsop87Enabled, VSOP87Dir: vsop87Dir, DE: deEnabled, DEFile: deFile, outputDir: outputDir}
	return config
}

// NewSunEphemerisFromConfig builds the ephemeris backend selected in
// conf.toml. With neither backend enabled an error is returned rather than a
// silent default.
func NewSunEphemerisFromConfig() (SunEphemeris, error) {
	conf := astrodynConfig()
	switch {
	case conf.VSOP87:
		return NewVSOP87Ephemeris(conf.VSOP87Dir)
	case conf.DE:
		return NewDEEphemeris(conf.DEFile)
	default:
		return nil, fmt.Errorf("%w: no ephemeris backend enabled in configuration", ErrPreconditionUnset)
	}
}

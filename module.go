package astrodyn

// PowerState defines an enum of spacecraft module power states.
type PowerState uint8

const (
	// PowerOff is the initial state of every module.
	PowerOff PowerState = iota
	// PowerOn means the module is fully powered.
	PowerOn
	// PowerIdle means the module is powered but not operating.
	PowerIdle
)

func (p PowerState) String() string {
	switch p {
	case PowerOff:
		return "OFF"
	case PowerOn:
		return "ON"
	case PowerIdle:
		return "IDLE"
	}
	panic("cannot stringify unknown power state")
}

// Module is the capability interface shared by all spacecraft-mounted
// subsystems. Sensors are the one shipped variant; batteries, thrusters and
// the like are additional variants, not subclasses.
type Module interface {
	Name() string
	TurnOn()
	TurnOff()
	SetIdle()
	PowerState() PowerState
}

// modulePower is the embeddable power bookkeeping shared by Module variants.
type modulePower struct {
	state PowerState
}

// TurnOn implements the Module interface.
func (m *modulePower) TurnOn() { m.state = PowerOn }

// TurnOff implements the Module interface.
func (m *modulePower) TurnOff() { m.state = PowerOff }

// SetIdle implements the Module interface.
func (m *modulePower) SetIdle() { m.state = PowerIdle }

// PowerState implements the Module interface.
func (m *modulePower) PowerState() PowerState { return m.state }

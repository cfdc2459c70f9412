package backend

import "fmt"

// Config is the configuration for the accelerated backends.
type Config struct {
	DeviceID    int
	Device      DeviceType
	BackendLibs string
}

// NewConfig creates a new Config with the given options. If no options
// are provided, it uses sensible defaults (CUDA device 0).
func NewConfig(opts ...Option) (*Config, error) {
	cfg := Config{
		DeviceID: 0,
		Device:   CUDA,
	}
	for _, o := range opts {
		if o != nil {
			if err := o(&cfg); err != nil {
				return nil, err
			}
		}
	}
	return &cfg, nil
}

// Option is an option for the accelerated backends.
type Option func(*Config) error

// DeviceType defines the kind of device the GPU capability targets.
type DeviceType int

const (
	CUDA DeviceType = iota
	CPU
	maxDeviceType
)

func (d DeviceType) String() string {
	switch d {
	case CUDA:
		return "CUDA"
	case CPU:
		return "CPU"
	default:
		return "unknown"
	}
}

// WithDeviceID sets the device ID to be used by the GPU backend. If
// this option is not set then device ID 0 is used.
func WithDeviceID(id int) Option {
	return func(c *Config) error {
		if id < 0 {
			return fmt.Errorf("invalid device id %d", id)
		}
		c.DeviceID = id
		return nil
	}
}

// WithDevice sets the device type the GPU backend targets. If this
// option is not set then CUDA is used.
func WithDevice(d DeviceType) Option {
	return func(c *Config) error {
		if d < 0 || d >= maxDeviceType {
			return fmt.Errorf("invalid device type %d", d)
		}
		c.Device = d
		return nil
	}
}

// WithBackendLibrary sets the location of the accelerator backend
// library. This overrides the environment variable
// `ICICLE_BACKEND_INSTALL_DIR`. If this option is not set, then the
// environment variable is used first and if the variable is not set,
// then the default search location is used.
func WithBackendLibrary(libs string) Option {
	return func(c *Config) error {
		if libs == "" {
			return fmt.Errorf("no backend libs provided")
		}
		c.BackendLibs = libs
		return nil
	}
}

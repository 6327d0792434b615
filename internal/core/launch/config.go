package launch

// Config holds the caller-supplied launch inputs: the program arguments
// handed to the runtime and the framework property overrides applied on
// top of the defaults. Inputs are copied on the way in and out, so a
// Config cannot be mutated through shared slices or maps.
type Config struct {
	args  []string
	props map[string]string
}

// WithArgs returns a copy of the config with the given program arguments.
func (c Config) WithArgs(args []string) Config {
	c.args = append([]string(nil), args...)
	return c
}

// WithProps returns a copy of the config with the given property
// overrides. An override with an empty value clears the corresponding
// default at merge time.
func (c Config) WithProps(props map[string]string) Config {
	copied := make(map[string]string, len(props))
	for key, value := range props {
		copied[key] = value
	}
	c.props = copied
	return c
}

// Args returns a copy of the configured program arguments.
func (c Config) Args() []string {
	return append([]string(nil), c.args...)
}

// Props returns a copy of the configured property overrides.
func (c Config) Props() map[string]string {
	copied := make(map[string]string, len(c.props))
	for key, value := range c.props {
		copied[key] = value
	}
	return copied
}

package config

// Subsystems maps a subsystem name ("memory", "ethics", …) to its settings.
// This is the decoded base configuration handed to the rule engine; the
// engine itself never touches the file format.
type Subsystems map[string]map[string]any

// Config is the top-level service configuration file.
type Config struct {
	ListenAddr string     `yaml:"listen_addr"`
	RulesPath  string     `yaml:"rules_path"`
	Subsystems Subsystems `yaml:"subsystems"`
}

// applyDefaults fills zero-valued fields.
func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.RulesPath == "" {
		c.RulesPath = "configs/rules.aria"
	}
	if c.Subsystems == nil {
		c.Subsystems = make(Subsystems)
	}
}

// Clone returns a deep copy of the subsystem map, so a compiled snapshot
// never aliases live configuration.
func (s Subsystems) Clone() Subsystems {
	out := make(Subsystems, len(s))
	for name, settings := range s {
		sec := make(map[string]any, len(settings))
		for k, v := range settings {
			sec[k] = v
		}
		out[name] = sec
	}
	return out
}

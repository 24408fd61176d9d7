package loader

// Definition represents the structure of a .weft.yaml definition file.
type Definition struct {
	Version     VersionDTO      `yaml:"version"`
	Plugs       []PlugDTO       `yaml:"plugs"`
	Nodes       []NodeDTO       `yaml:"nodes"`
	Connections []ConnectionDTO `yaml:"connections"`
	Metadata    []MetadataDTO   `yaml:"metadata"`
}

// VersionDTO records the tool version that exported the definition.
type VersionDTO struct {
	Milestone int `yaml:"milestone"`
	Major     int `yaml:"major"`
}

// PlugDTO describes one interface plug of the definition. A plug with
// children is structured and carries no type or default of its own.
type PlugDTO struct {
	Name      string    `yaml:"name"`
	Direction string    `yaml:"direction"`
	Type      string    `yaml:"type"`
	Default   any       `yaml:"default"`
	Children  []PlugDTO `yaml:"children"`
}

// NodeDTO describes one internal node: its registry kind and the literal
// values set on its input plugs, keyed by dotted relative plug name.
type NodeDTO struct {
	Name   string         `yaml:"name"`
	Kind   string         `yaml:"kind"`
	Values map[string]any `yaml:"values"`
}

// ConnectionDTO describes one connection between dotted plug addresses,
// relative to the container being loaded into.
type ConnectionDTO struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// MetadataDTO attaches one metadata entry to a component. An empty target
// addresses the container itself.
type MetadataDTO struct {
	Target     string `yaml:"target"`
	Key        string `yaml:"key"`
	Value      any    `yaml:"value"`
	Persistent bool   `yaml:"persistent"`
}

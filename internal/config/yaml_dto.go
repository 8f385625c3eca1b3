package config

type YAMLConfig struct {
	ExposeDirectives  []string       `yaml:"exposeDirectives"`
	BuiltInDirectives string         `yaml:"builtInDirectives"`
	Parallelism       int            `yaml:"parallelism"`
	SortSchema        bool           `yaml:"sortSchema"`
	Subgraphs         []YAMLSubgraph `yaml:"subgraphs"`
}

type YAMLSubgraph struct {
	Name   string     `yaml:"name"`
	URL    string     `yaml:"url"`
	Schema YAMLSchema `yaml:"schema"`
}

// YAMLSchema tells where the subgraph SDL comes from. Exactly one field is set.
type YAMLSchema struct {
	File       string `yaml:"file"`
	Introspect string `yaml:"introspect"`
	SDL        string `yaml:"sdl"`
}

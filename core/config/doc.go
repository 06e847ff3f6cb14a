// Package config loads everything the tool is told, as opposed to what it
// discovers on the remote instances.
//
// # Declared state
//
// The YAML file passed via --config holds a global section with shared
// connection defaults plus daemon options, and an instances list. Each
// instance declares how to reach one Pi-hole and the state it should
// converge to: a free-form scalar config tree and typed entity collections
// (lists, domains, groups, clients). Load parses the file and
// MergedInstances resolves the global defaults into each instance.
//
// # Settings
//
// Process-level options that do not belong in the declared-state document
// (log level and format, daemon interval, status server address) come from
// environment variables, optionally seeded from a .env file. Defaults are
// declared as struct tags and bound through Viper.
//
// # Lint
//
// Lint checks declared instances offline for the problems reconciliation
// would otherwise surface mid-flight: unusable connection parameters,
// duplicate entity keys, unknown domain types and malformed host entries.
//
// # Usage
//
//	file, err := config.Load("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, instance := range file.MergedInstances() {
//	    fmt.Println(instance.Name)
//	}
package config

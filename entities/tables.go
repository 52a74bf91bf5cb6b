package entities

import "fmt"

// TableConfig is the number of tables in a reservation. Only 1..5 are valid;
// every table seats exactly SeatsPerTable people. The display label doubles
// as the upstream wire value, so it must be derived here and nowhere else.
type TableConfig int

const (
	SeatsPerTable = 6

	MinTables = 1
	MaxTables = 5
)

func (t TableConfig) Valid() bool {
	return t >= MinTables && t <= MaxTables
}

func (t TableConfig) Seats() int {
	return int(t) * SeatsPerTable
}

// Label renders the fixed "{n} Mesa{s} / {n*6} cadeiras" convention.
func (t TableConfig) Label() string {
	plural := ""
	if t > 1 {
		plural = "s"
	}
	return fmt.Sprintf("%d Mesa%s / %d cadeiras", int(t), plural, t.Seats())
}

// TableConfigs returns the five valid configurations in order.
func TableConfigs() []TableConfig {
	configs := make([]TableConfig, 0, MaxTables)
	for n := MinTables; n <= MaxTables; n++ {
		configs = append(configs, TableConfig(n))
	}
	return configs
}

// ParseTableConfig matches a label against the enumerated set. Free text is
// never accepted.
func ParseTableConfig(label string) (TableConfig, bool) {
	for _, config := range TableConfigs() {
		if config.Label() == label {
			return config, true
		}
	}
	return 0, false
}

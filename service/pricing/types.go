package pricing

type service struct {
	currency     string
	machineTypes map[string]float64
	// regions maps region -> machine type -> hourly price, overriding machineTypes
	regions map[string]map[string]float64
}

type PriceTableService interface {
	HourlyRate(machineType, zone string) (float64, bool)
	Currency() string
}

// File is the YAML layout of a price table override file
type File struct {
	Currency     string                        `yaml:"currency"`
	MachineTypes map[string]float64            `yaml:"machineTypes"`
	Regions      map[string]map[string]float64 `yaml:"regions"`
}

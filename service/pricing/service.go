package pricing

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

const defaultCurrency = "USD"

// defaultMachineTypePrices are on-demand hourly rates used when no billing data exists
func defaultMachineTypePrices() map[string]float64 {
	return map[string]float64{
		// GCP
		"e2-micro":      0.0076,
		"e2-small":      0.0166,
		"e2-medium":     0.0332,
		"e2-standard-2": 0.03,
		"e2-standard-4": 0.05,
		"n1-standard-1": 0.0475,
		"n1-standard-2": 0.0950,
		"n2-standard-2": 0.0971,
		"n2-standard-4": 0.1942,
		// AWS
		"t3.micro":  0.0104,
		"t3.small":  0.0208,
		"t3.medium": 0.0416,
		"t3.large":  0.0832,
		"m5.large":  0.096,
		"m5.xlarge": 0.192,
		"c5.large":  0.085,
	}
}

func NewService() *service {
	return &service{
		currency:     defaultCurrency,
		machineTypes: defaultMachineTypePrices(),
		regions:      map[string]map[string]float64{},
	}
}

// LoadFile returns the default table merged with the overrides in path.
// An empty path yields the defaults.
func LoadFile(path string) (*service, error) {
	s := NewService()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read price table file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse price table file: %w", err)
	}

	s.merge(f)
	return s, nil
}

func (s *service) merge(f File) {
	if f.Currency != "" {
		s.currency = f.Currency
	}
	for machineType, price := range f.MachineTypes {
		s.machineTypes[machineType] = price
	}
	for region, prices := range f.Regions {
		if s.regions[region] == nil {
			s.regions[region] = map[string]float64{}
		}
		for machineType, price := range prices {
			s.regions[region][machineType] = price
		}
	}
}

// HourlyRate implements service.PriceTable
func (s *service) HourlyRate(machineType, zone string) (float64, bool) {
	if machineType == "" {
		return 0, false
	}
	if prices, ok := s.regions[RegionOf(zone)]; ok {
		if price, ok := prices[machineType]; ok {
			return price, true
		}
	}
	price, ok := s.machineTypes[machineType]
	return price, ok
}

// Currency implements service.PriceTable
func (s *service) Currency() string {
	return s.currency
}

// RegionOf derives the region of a zone:
// "us-central1-a" -> "us-central1", "us-east-1a" -> "us-east-1".
func RegionOf(zone string) string {
	if i := strings.LastIndex(zone, "-"); i > 0 && len(zone)-i == 2 && unicode.IsLetter(rune(zone[i+1])) {
		return zone[:i]
	}
	n := len(zone)
	if n >= 2 && unicode.IsLetter(rune(zone[n-1])) && unicode.IsDigit(rune(zone[n-2])) {
		return zone[:n-1]
	}
	return zone
}

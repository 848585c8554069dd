package main

import (
	"github.com/elC0mpa/vm-doctor/model"
	"github.com/elC0mpa/vm-doctor/service/flag"
)

// LoadConfig reads the run configuration from environment variables only.
// Tools override the provider and the decision settings per call.
func LoadConfig() (model.Flags, error) {
	return flag.NewService().GetParsedFlags(nil)
}

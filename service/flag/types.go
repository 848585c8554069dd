package flag

import "github.com/elC0mpa/vm-doctor/model"

type service struct {
	environ map[string]string
}

type FlagService interface {
	GetParsedFlags(args []string) (model.Flags, error)
}

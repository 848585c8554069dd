package model

// AccountInfo represents cloud account/project identity
type AccountInfo struct {
	Provider    string
	AccountID   string
	AccountName string
}

// VmIdentity identifies a virtual machine. It is never mutated after discovery.
type VmIdentity struct {
	Project    string `json:"project"`
	Zone       string `json:"zone"`
	Name       string `json:"name"`
	InstanceID string `json:"instance_id"`
}

// Labels is the label snapshot taken at inventory time
type Labels map[string]string

// Matches reports whether key is present with exactly the expected value.
func (l Labels) Matches(key, value string) bool {
	v, ok := l[key]
	return ok && v == value
}

// Instance is a running VM as reported by the fleet inventory
type Instance struct {
	VmIdentity
	Labels      Labels
	MachineType string
}

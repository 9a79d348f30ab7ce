package config

import (
	_ "embed"
	"fmt"
	"os"
)

// default access control lists, overridable with --acl-model-file / --acl-policy-file
var (
	//go:embed acl/model.conf
	defaultACLModel string
	//go:embed acl/policy.csv
	defaultACLPolicy string
)

// ACL returns the casbin model and policy text to enforce.
func (c *Config) ACL() (model, policy string, err error) {
	model, policy = defaultACLModel, defaultACLPolicy

	if c.ACLModelFile != "" {
		b, err := os.ReadFile(c.ACLModelFile)
		if err != nil {
			return "", "", fmt.Errorf("reading acl model: %w", err)
		}
		model = string(b)
	}

	if c.ACLPolicyFile != "" {
		b, err := os.ReadFile(c.ACLPolicyFile)
		if err != nil {
			return "", "", fmt.Errorf("reading acl policy: %w", err)
		}
		policy = string(b)
	}

	return model, policy, nil
}

// DefaultACL returns the built-in model and policy.
func DefaultACL() (model, policy string) {
	return defaultACLModel, defaultACLPolicy
}

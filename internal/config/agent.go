package config

import (
	"errors"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentName         = "MENUCATCH_AGENT_NAME"
	EnvAgentProviderName = "MENUCATCH_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "MENUCATCH_AGENT_BASE_URL"
	EnvAgentToken        = "MENUCATCH_AGENT_TOKEN"
	EnvAgentDeployment   = "MENUCATCH_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "MENUCATCH_AGENT_API_VERSION"
	EnvAgentAuthType     = "MENUCATCH_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "MENUCATCH_AGENT_MODEL_NAME"
)

const defaultAgentName = "menucatch-classifier"

// provider options that may be supplied through the environment, keyed by
// variable name. Tokens belong here rather than in config files.
var agentOptionEnv = map[string]string{
	EnvAgentToken:      "token",
	EnvAgentDeployment: "deployment",
	EnvAgentAPIVersion: "api_version",
	EnvAgentAuthType:   "auth_type",
}

// FinalizeAgent completes the classifier agent config: go-agents defaults
// under the configured values, then environment overrides, then validation.
// It only runs when the agent classifier is selected.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	merged := gaconfig.DefaultAgentConfig()
	merged.Merge(c)
	*c = merged

	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}

	defaultString(&c.Name, defaultAgentName)
	envString(&c.Name, EnvAgentName)
	envString(&c.Provider.Name, EnvAgentProviderName)
	envString(&c.Provider.BaseURL, EnvAgentBaseURL)
	envString(&c.Model.Name, EnvAgentModelName)

	for env, key := range agentOptionEnv {
		if v := os.Getenv(env); v != "" {
			c.Provider.Options[key] = v
		}
	}

	var errs []error
	if c.Provider.Name == "" {
		errs = append(errs, errors.New("provider name required"))
	}
	if c.Model.Name == "" {
		errs = append(errs, errors.New("model name required"))
	}
	return errors.Join(errs...)
}

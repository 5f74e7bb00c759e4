package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
}

// GetParseConfig returns the AI configuration for resume extraction with
// fallback to global config.
func (c *Config) GetParseConfig() OperationAIConfig {
	config := c.AI.Parse
	c.applyOperationDefaults(&config)
	return config
}

// GetAnalyzeConfig returns the AI configuration for job analysis with
// fallback to global config.
func (c *Config) GetAnalyzeConfig() OperationAIConfig {
	config := c.AI.Analyze
	c.applyOperationDefaults(&config)
	return config
}

// GetOptimizeConfig returns the AI configuration for resume optimization with
// fallback to global config.
func (c *Config) GetOptimizeConfig() OperationAIConfig {
	config := c.AI.Optimize
	c.applyOperationDefaults(&config)
	return config
}

// GetChatConfig returns the AI configuration for resume chat with fallback to
// global config.
func (c *Config) GetChatConfig() OperationAIConfig {
	config := c.AI.Chat
	c.applyOperationDefaults(&config)
	return config
}

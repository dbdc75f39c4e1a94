package service

import (
	"main/core"
)

type ConfigService struct{}

func NewConfigService() *ConfigService {
	return &ConfigService{}
}

// SetBackend updates the storage backend configuration.
// It persists the new settings and triggers a hot swap of the live
// backend; handles already held by callers observe the swap.
func (s *ConfigService) SetBackend(backendName, dataPath string) error {
	// 1. Get copy of current configuration to update fields
	currentConfig := core.GetConfig()
	currentConfig.Backend = backendName
	if dataPath != "" {
		currentConfig.DataPath = dataPath
	}

	// 2. Persist and rebuild the backend from the new configuration
	//    (As with any swap, data migration is not handled here)
	return core.UpdateBackend(currentConfig)
}

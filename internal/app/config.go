package app

import (
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/phone"
	"github.com/citydir/orgdirectory-backend/internal/utils"
)

type Config struct {
	APIKey             string
	Port               string
	PhoneRegion        string
	StrictActivityRefs bool
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		APIKey:             utils.GetEnv("API_KEY", "", log),
		Port:               utils.GetEnv("PORT", "8080", log),
		PhoneRegion:        utils.GetEnv("PHONE_REGION", phone.DefaultRegion, log),
		StrictActivityRefs: utils.GetEnvAsBool("STRICT_ACTIVITY_REFS", false, log),
	}
}

package handler

import (
	"batepapo/internal/app/chat"
	"batepapo/internal/configs"
)

// AppDeps holds the process-wide state shared by every handler.
type AppDeps struct {
	Chat   *chat.Service
	Config *configs.AppConfig
}

package contacts

import (
	"skybook/internal/backend"
	"skybook/internal/shared/middleware"
)

type AdminListResponse struct {
	Contacts []backend.Contact   `json:"contacts"`
	Count    int                 `json:"count"`
	Unread   int                 `json:"unread"`
	Controls middleware.Controls `json:"controls"`
}

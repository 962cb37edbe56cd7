package di

import (
	adminService "rental/internal/domains/admin/service"
	"rental/transport/http"
)

// App bundles everything main needs: the HTTP server and the admin service
// whose Bootstrap seeds the default administrator on first run.
type App struct {
	HTTP  *http.HTTP
	Admin adminService.Admin
}

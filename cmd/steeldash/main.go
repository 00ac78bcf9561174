// @title                       Steel Detailing Dashboard API
// @version                     1.0
// @description                 Role-based project dashboards with cookie sessions or bearer tokens.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"

	"github.com/steeldetailing/pm-dashboard/cmd/steeldash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

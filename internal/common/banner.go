package common

import (
	"github.com/ternarybob/banner"
)

// AppName is the display name used in the startup banner and reports
const AppName = "Painscope"

// PrintBanner displays the application banner
func PrintBanner(version string) {
	banner.PrintSimple(AppName, "Version "+version)
}

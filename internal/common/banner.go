package common

import (
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner. Only called from interactive
// CLI paths; never in MCP stdio mode where stdout carries protocol frames.
func PrintBanner(version string) {
	banner.PrintSimple("Praeco", version)
}

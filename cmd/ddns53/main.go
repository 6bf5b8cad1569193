// Command ddns53 keeps Route 53 A records pointed at the host's public IPv4 address.
//
// Usage:
//
//	ddns53 [-d] [-v] DOMAIN...
package main

import (
	"os"

	"github.com/Travis-Britz/ddns/v2/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

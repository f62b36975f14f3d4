/*
Command publisher serves the routes described in a YAML routes file,
rendering each as JSON, XML, plain text, or HTML through the theme's XSLT stylesheets.

Configuration comes from environment variables and a .env file; cf. package ranger.
*/
package main

import (
	"fmt"
	"os"

	"github.com/xy-planning-network/publish/ranger"
)

func main() {
	rng, err := ranger.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := rng.Guide(); err != nil {
		rng.EmitLogger().Error("publisher stopped", nil)
		os.Exit(1)
	}
}

// Command mana drives the Mana compiler front-end: module loading, symbol
// resolution and documentation generation.
package main

import "github.com/hassan/mana/cmd/mana/cmd"

func main() {
	cmd.Execute()
}

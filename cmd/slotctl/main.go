// Command slotctl inspects and edits the model slots of a voice changer
// model directory.
package main

import "github.com/eliasbuenosdias/voice-changer/internal/cli"

func main() {
	cli.Execute()
}

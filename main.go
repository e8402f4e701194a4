// Tomato is a Pomodoro timer for the terminal.
package main

import "github.com/xvierd/tomato/cmd"

func main() {
	cmd.Execute()
}

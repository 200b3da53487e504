package main

import "github.com/jsphweid/pianocoach/cmd"

func main() {
	cmd.Execute()
}

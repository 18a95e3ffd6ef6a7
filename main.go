package main

import "github.com/jsphweid/engraver/cmd"

func main() {
	cmd.Execute()
}

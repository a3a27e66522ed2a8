package main

import "github.com/sw33tLie/carbontimeline/cmd"

func main() {
	cmd.Execute()
}

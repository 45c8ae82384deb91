package main

import "github.com/notargets/goswe/cmd"

func main() {
	cmd.Execute()
}

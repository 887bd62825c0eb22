package main

import "github.com/abdhusiya/fileindex/cmd"

func main() {
	cmd.Execute()
}

package main

import (
	"MoodFM/cmd"
)

func main() {
	cmd.Execute()
}

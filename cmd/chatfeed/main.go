package main

import (
	"chatfeed/cmd/chatfeed/cmd"
)

func main() {
	cmd.Execute()
}

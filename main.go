package main

import "studentweb/cmd"

func main() {
	cmd.Execute()
}

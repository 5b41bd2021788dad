package main

import "upscaler/cmd"

func main() {
	cmd.Execute()
}

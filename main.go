package main

import "pihole-manager/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/immich-janitor/immich-janitor/internal/cmd"

func main() {
	cmd.Execute()
}

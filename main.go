package main

import "sitemap-manager/cmd"

func main() {
	cmd.Execute()
}

// Package main provides the CLI entrypoint for dropdown.
package main

func main() {
	Execute()
}

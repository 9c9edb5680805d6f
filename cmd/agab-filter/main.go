// cmd/agab-filter/main.go
package main

import (
	"agab/internal/appshell"
	"agab/internal/filterapp"
)

func main() {
	appshell.Main(filterapp.Run)
}

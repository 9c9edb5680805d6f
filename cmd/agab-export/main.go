// cmd/agab-export/main.go
package main

import (
	"agab/internal/appshell"
	"agab/internal/exportapp"
)

func main() {
	appshell.Main(exportapp.Run)
}

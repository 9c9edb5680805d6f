// cmd/agab-number/main.go
package main

import (
	"agab/internal/appshell"
	"agab/internal/numberapp"
)

func main() {
	appshell.Main(numberapp.Run)
}

// cmd/agab-annotate/main.go
package main

import (
	"agab/internal/annotateapp"
	"agab/internal/appshell"
)

func main() {
	appshell.Main(annotateapp.Run)
}

/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package main

import (
	"poi2geo/cmd"
)

func main() {
	cmd.Execute()
}

// go build -ldflags="-s -w -X 'poi2geo/internal/version.Version=v1.0.0' -X 'poi2geo/internal/version.Commit=$(git rev-parse HEAD)' -X 'poi2geo/internal/version.BuildDate=$(date +%Y-%m-%d_%H:%M:%S)'" -o release/poi2geo .

/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/gantry/cmd"
	"github.com/josephgoksu/gantry/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}

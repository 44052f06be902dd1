// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	_ "github.com/tliron/commonlog/simple"

	"localopts/internal/ir"
	"localopts/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the localopts REPL, %s!\n", currentUser.Username)
	fmt.Println("Enter IR functions; each is printed back after optimization.")
	repl.Start(os.Stdin, os.Stdout, ir.DefaultPasses)
}

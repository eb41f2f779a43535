// Command hashcode prints the stored form of a personal access code, for
// seeding user_security rows by hand.
package main

import (
	"fmt"
	"os"

	"profitdesk/internal/domain/service/security"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashcode <access-code>")
		os.Exit(2)
	}

	fmt.Println(security.HashCode(os.Args[1]))
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"statuswatch/internal/app"
)

// runInteractive is the bare-invocation prompt. The verbs mirror the
// subcommands; start hands the session over to the monitor loop and the
// prompt does not come back.
func runInteractive(ctx context.Context, a *app.App) error {
	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("statuswatch - Interactive Mode")
	fmt.Println(rule)
	fmt.Println("\nCommands:")
	fmt.Println("  add <url>     - Add a URL to monitor")
	fmt.Println("  list          - List all URLs")
	fmt.Println("  remove <url>  - Remove a URL")
	fmt.Println("  check         - Check all URLs once")
	fmt.Printf("  start         - Start continuous monitoring (every %s)\n", a.Config.IntervalDuration())
	fmt.Println("  quit          - Exit")
	fmt.Println("\n" + rule)
	fmt.Println()

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			fmt.Println("\nGoodbye!")
			return in.Err()
		}
		if ctx.Err() != nil {
			fmt.Println("\nGoodbye!")
			return nil
		}

		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		verb := strings.ToLower(fields[0])
		arg := strings.Join(fields[1:], " ")

		var err error
		switch verb {
		case "quit", "exit":
			fmt.Println("Goodbye!")
			return nil
		case "add":
			err = addURL(a, arg)
		case "remove":
			err = removeURL(a, arg)
		case "list":
			listURLs(ctx, a)
		case "check":
			checkAll(ctx, a)
			fmt.Println()
		case "start":
			return runMonitor(ctx, a, a.Config.IntervalDuration())
		default:
			fmt.Println("Unknown command. Type 'quit' to exit.")
		}
		if err != nil {
			fmt.Println("Error:", err)
		}
	}
}

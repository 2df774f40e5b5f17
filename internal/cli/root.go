package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to logbook (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("logbook> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: add, list, search, edit, delete, import <file>, export <file>, purge <days>, exit")
		case "add":
			a.add(ctx)
		case "list":
			a.list(ctx)
		case "search":
			a.search(ctx, strings.Join(args, " "))
		case "edit":
			a.edit(ctx, args)
		case "delete":
			a.delete(ctx, args)
		case "import":
			a.importFile(ctx, args)
		case "export":
			a.exportFile(ctx, args)
		case "purge":
			a.purge(ctx, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) importFile(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: import <file>")
		return
	}
	f, err := os.Open(args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer f.Close()

	sum, err := a.journal.Import(ctx, f)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	msg := a.journal.Message(sum)
	if sum.IsError() {
		fmt.Fprintln(os.Stderr, msg)
		return
	}
	fmt.Println(msg)
}

func (a *App) exportFile(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: export <file>")
		return
	}
	f, err := os.Create(args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	msg, err := a.journal.Export(ctx, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(msg)
}

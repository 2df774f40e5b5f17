package cli

import (
	"context"
	"fmt"

	"github.com/mlazarev/logbook/internal/models"
)

const pageSize = 20

func (a *App) list(ctx context.Context) {
	entries, err := a.journal.List(ctx, 0, pageSize)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	a.printEntries(entries)
}

func (a *App) search(ctx context.Context, query string) {
	if query == "" {
		fmt.Println("Usage: search <text>")
		return
	}
	entries, err := a.journal.Search(ctx, query, pageSize)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	a.printEntries(entries)
}

func (a *App) printEntries(entries []models.Entry) {
	if len(entries) == 0 {
		fmt.Println("No notes found")
		return
	}
	for i := range entries {
		e := &entries[i]
		amount := a.journal.FormatAmount(e)
		fmt.Printf("%d  %s  %s  %s\n", e.UID, e.CreatedAt.Local().Format("2006-01-02 15:04"), amount, e.Content)
	}
}

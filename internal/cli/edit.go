package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

func (a *App) edit(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: edit <uid>")
		return
	}
	uid, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Invalid uid:", args[0])
		return
	}

	e, err := a.journal.Get(ctx, uid)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// The editor never sees invisible units; the entry itself is only
	// rewritten if the user saves.
	unit := a.journal.EditorUnit(e)
	fmt.Printf("Editing note %d (%s, %s)\n", e.UID, a.cat.Sprintf(unit.Name), a.journal.FormatAmount(e))

	content, err := GetMultiline(a.reader, "New note text (empty keeps current)", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if content != "" {
		e.Content = content
	}

	text, err := GetSimpleText(a.reader, "New amount (empty keeps current)", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if text != "" {
		e.Amount = a.units.Parse(unit, text)
		e.Unit = unit.ID
	}

	if err := a.journal.Update(ctx, e); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Saved")
}

func (a *App) purge(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: purge <days>")
		return
	}
	days, err := strconv.Atoi(args[0])
	if err != nil || days < 0 {
		fmt.Println("Invalid number of days:", args[0])
		return
	}
	n, err := a.journal.Purge(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("Dropped %d deleted notes\n", n)
}

func (a *App) delete(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: delete <uid>")
		return
	}
	uid, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Invalid uid:", args[0])
		return
	}
	if err := a.journal.Delete(ctx, uid); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Deleted")
}

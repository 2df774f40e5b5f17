package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/mlazarev/logbook/internal/units"
)

func (a *App) add(ctx context.Context) {

	content, err := GetMultiline(a.reader, "Enter note text", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if content == "" {
		fmt.Println("Note text must not be empty")
		return
	}

	unit, err := a.pickUnit()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	amount := 0.0
	if len(unit.Choices) > 0 || unit.ID == units.IDDouble {
		text, err := GetSimpleText(a.reader, "Enter amount", os.Stdout)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		amount = a.units.Parse(unit, text)
	}

	e, err := a.journal.Add(ctx, content, amount, unit.ID)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("Added note %d\n", e.UID)
}

// pickUnit offers the visible units by number.
func (a *App) pickUnit() (*units.Unit, error) {
	var visible []*units.Unit
	for _, v := range a.units.Set().All() {
		if v.Visible {
			visible = append(visible, v)
		}
	}
	for i, v := range visible {
		fmt.Printf("%d. %s\n", i+1, a.cat.Sprintf(v.Name))
	}
	text, err := GetSimpleText(a.reader, "Pick a unit", os.Stdout)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > len(visible) {
		return nil, fmt.Errorf("invalid choice %q", text)
	}
	return visible[n-1], nil
}

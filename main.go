package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"spaedge/pkg/history"
	"spaedge/pkg/report"
)

const historyLimit = 50

// ---------- TUI ----------

func main() {
	var (
		dbPath    = flag.String("history", history.DefaultPath(), "SQLite file for tried URIs")
		noHistory = flag.Bool("no-history", false, "do not read or write the history file")
	)
	flag.Parse()

	ctx := context.Background()
	app := tview.NewApplication()

	var store *history.Store
	storeStatus := "history off"
	if !*noHistory {
		s, err := history.Open(ctx, *dbPath)
		if err != nil {
			storeStatus = fmt.Sprintf("[red]history unavailable: %s[-:-:-]", tview.Escape(err.Error()))
		} else {
			store = s
			defer store.Close()
			storeStatus = "history: " + tview.Escape(*dbPath)
		}
	}

	status := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetChangedFunc(func() {
			app.Draw()
		})
	status.SetBorder(true).SetTitle("spaedge")
	setStatus := func(msg string) {
		status.SetText(storeStatus + "\n" + msg)
	}
	setStatus("Hotkeys (outside the input): A/R/P filter, H history, X clear history, Esc quit")

	output := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetChangedFunc(func() {
			app.Draw()
		})
	output.SetBorder(true).SetTitle("Rewrites (A/R/P to filter)")

	var outcomes []report.Outcome
	filterMode := report.FilterAll

	render := func() {
		output.Clear()
		if len(outcomes) == 0 {
			fmt.Fprint(output, "[yellow]Enter a URI and press Rewrite.[-:-:-]\n")
			return
		}
		fmt.Fprint(output, report.Build(outcomes, filterMode, report.Options{Colorize: true}))
	}
	render()

	form := tview.NewForm().
		AddInputField("URI", "/", 40, nil, nil)
	form.SetBorder(true).SetTitle("Request (TAB to move, ENTER to edit)")

	uriField := form.GetFormItem(0).(*tview.InputField)

	form.AddButton("Rewrite", func() {
		o := report.Evaluate([]string{uriField.GetText()})[0]
		outcomes = append([]report.Outcome{o}, outcomes...)
		render()
		if store == nil {
			return
		}
		if err := store.Record(ctx, o); err != nil {
			setStatus(fmt.Sprintf("[red]%s[-:-:-]", tview.Escape(err.Error())))
		}
	})

	form.AddButton("Quit", func() {
		app.Stop()
	})

	loadHistory := func() {
		if store == nil {
			setStatus("[red]no history store[-:-:-]")
			return
		}
		entries, err := store.Recent(ctx, historyLimit)
		if err != nil {
			setStatus(fmt.Sprintf("[red]%s[-:-:-]", tview.Escape(err.Error())))
			return
		}
		// Re-evaluate so the view always reflects the current rule.
		outcomes = report.Evaluate(history.Inputs(entries))
		setStatus(fmt.Sprintf("loaded %d URIs from history", len(entries)))
		render()
	}

	clearHistory := func() {
		if store == nil {
			return
		}
		if err := store.Clear(ctx); err != nil {
			setStatus(fmt.Sprintf("[red]%s[-:-:-]", tview.Escape(err.Error())))
			return
		}
		outcomes = nil
		setStatus("history cleared")
		render()
	}

	flex := tview.NewFlex().
		AddItem(form, 50, 0, true).
		AddItem(output, 0, 1, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(status, 4, 0, false).
		AddItem(flex, 0, 1, true)

	root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			app.Stop()
			return nil
		}
		if event.Key() != tcell.KeyRune {
			return event
		}
		if _, typing := app.GetFocus().(*tview.InputField); typing {
			return event
		}
		switch strings.ToLower(string(event.Rune())) {
		case "a":
			filterMode = report.FilterAll
		case "r":
			filterMode = report.FilterRewritten
		case "p":
			filterMode = report.FilterPassthrough
		case "h":
			loadHistory()
			return nil
		case "x":
			clearHistory()
			return nil
		default:
			return event
		}
		render()
		return nil
	})

	if err := app.SetRoot(root, true).EnableMouse(true).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}

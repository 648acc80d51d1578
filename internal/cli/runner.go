package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Makepad-fr/travelgrid/internal/model"
	"github.com/Makepad-fr/travelgrid/internal/tui"
	"github.com/Makepad-fr/travelgrid/internal/ui"
	"github.com/Makepad-fr/travelgrid/internal/view"
)

// Env is what subcommands need from the outside world.
type Env struct {
	// Open returns the catalog; called at most once, and not for help.
	Open func(ctx context.Context) (tui.Catalog, error)
	// Interactive runs the full-screen UI. Defaults to tui.Run.
	Interactive func(ctx context.Context, c tui.Catalog) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, env Env) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	var run func(context.Context, tui.Catalog) int
	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		fs := newFlagSet("ls")
		category := fs.StringP("category", "c", "", "only items of this category")
		search := fs.StringP("search", "s", "", "only items whose title or country contains this text")
		if err := fs.Parse(a); err != nil {
			ui.Fail("ls: " + err.Error())
			return 2
		}
		run = func(ctx context.Context, c tui.Catalog) int { return doList(ctx, c, *category, *search) }

	case "add":
		fs := newFlagSet("add")
		f := fieldFlags(fs)
		if err := fs.Parse(a); err != nil {
			ui.Fail("add: " + err.Error())
			return 2
		}
		fields := f.fields()
		if fields.Title == "" {
			fields.Title = strings.TrimSpace(strings.Join(fs.Args(), " "))
		}
		if fields.Title == "" {
			ui.Fail("usage: travelgrid add --titulo <title> [flags]")
			return 2
		}
		run = func(ctx context.Context, c tui.Catalog) int { return doAdd(ctx, c, fields) }

	case "update":
		// the id goes first: remote ids start with '-' and would parse as flags
		if len(a) == 0 || strings.TrimSpace(a[0]) == "" {
			ui.Fail("usage: travelgrid update <id> [flags]")
			return 2
		}
		id := a[0]
		fs := newFlagSet("update")
		f := fieldFlags(fs)
		if err := fs.Parse(a[1:]); err != nil {
			ui.Fail("update: " + err.Error())
			return 2
		}
		if fs.NArg() != 0 {
			ui.Fail("usage: travelgrid update <id> [flags]")
			return 2
		}
		run = func(ctx context.Context, c tui.Catalog) int { return doUpdate(ctx, c, id, f.fields()) }

	case "rm":
		if len(a) != 1 || strings.TrimSpace(a[0]) == "" {
			ui.Fail("usage: travelgrid rm <id>")
			return 2
		}
		id := a[0]
		run = func(ctx context.Context, c tui.Catalog) int { return doRemove(ctx, c, id) }

	case "seed":
		run = doSeed

	case "ui":
		interactive := env.Interactive
		if interactive == nil {
			interactive = tui.Run
		}
		run = func(ctx context.Context, c tui.Catalog) int {
			if err := interactive(ctx, c); err != nil {
				ui.Fail("ui: " + err.Error())
				return 1
			}
			return 0
		}

	default:
		ui.Fail("unknown subcommand: " + cmd)
		fmt.Fprintln(ui.Stdout())
		PrintHelp()
		return 2
	}

	c, err := env.Open(ctx)
	if err != nil {
		ui.Fail("open: " + err.Error())
		return 1
	}
	return run(ctx, c)
}

// PrintHelp writes the usage text to stdout.
func PrintHelp() {
	fmt.Fprint(ui.Stdout(), `travelgrid - a tiny travel destination catalog

Usage:
  travelgrid [--config FILE] [--theme classic|neon|mono] [--no-color] <subcommand> [args]

Subcommands:
  ls [-c CATEGORY] [-s TEXT]   List destinations, optionally filtered
  add [flags] [title...]       Add a destination (title is required)
  update <id> [flags]          Update a destination
  rm <id>                      Remove a destination
  seed                         Insert example destinations when the catalog is empty
  ui                           Interactive catalog screen

Item flags (add, update):
  -t, --titulo   -d, --descricao   --categoria   --imagem   --pais   --ano

The remote store merges an update into the stored record; the local store
replaces the record with exactly the flags given.

Storage:
  Set remote.url (or TRAVELGRID_REMOTE_URL) to use a remote JSON store,
  otherwise items are kept locally (local.driver: file, badger or redis).

Examples:
  travelgrid add --titulo "Lisboa" --categoria Cidade --pais Portugal --ano 2019
  travelgrid ls -c Praia
  travelgrid update -NxYz --titulo "Lisboa antiga"
  travelgrid rm -NxYz
`)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

type itemFlags struct {
	title, description, category, image, country *string
	year                                         *int
}

func fieldFlags(fs *pflag.FlagSet) itemFlags {
	return itemFlags{
		title:       fs.StringP("titulo", "t", "", "title"),
		description: fs.StringP("descricao", "d", "", "description"),
		category:    fs.String("categoria", "", "category"),
		image:       fs.String("imagem", "", "image URL"),
		country:     fs.String("pais", "", "country"),
		year:        fs.Int("ano", 0, "year"),
	}
}

func (f itemFlags) fields() model.Fields {
	return model.Fields{
		Title:       strings.TrimSpace(*f.title),
		Description: strings.TrimSpace(*f.description),
		Category:    strings.TrimSpace(*f.category),
		Image:       strings.TrimSpace(*f.image),
		Country:     strings.TrimSpace(*f.country),
		Year:        *f.year,
	}
}

// -------------- subcommand impls ----------------

func doList(ctx context.Context, c tui.Catalog, category, search string) int {
	items, err := c.FetchItems(ctx)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	shown := view.Filter(items, category, search)

	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d/%d  %s",
		ui.C(t.Title, "Destinos"),
		ui.C(t.Accent, "Itens"), len(shown), len(items),
		ui.C(t.Muted, "["+c.Backend()+"]"),
	)

	lines := []string{header, ""}
	if len(shown) == 0 {
		lines = append(lines, ui.C(t.Muted, "nenhum destino"))
	}
	for i, it := range shown {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, ui.CardLines(view.CardOf(it))...)
	}
	if len(items) > 0 {
		lines = append(lines, "")
		lines = append(lines, categoryLines(shown)...)
	}
	lines = append(lines, "", ui.C(t.Muted, "Tip: add with `travelgrid add --titulo \"Lisboa\"`"))
	ui.Panel(lines)
	return 0
}

// categoryLines shows how the listed items spread over categories.
func categoryLines(items []model.Item) []string {
	counts := map[string]int{}
	for _, it := range items {
		counts[view.CardOf(it).Category]++
	}
	var out []string
	for _, cat := range append(view.Categories(items), view.Missing) {
		n, ok := counts[cat]
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("%-10s %s", cat, ui.Bar(n, len(items), 20)))
	}
	return out
}

func doAdd(ctx context.Context, c tui.Catalog, f model.Fields) int {
	id, err := c.AddItem(ctx, f)
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 1
	}
	ui.OK("added " + id)
	return 0
}

func doUpdate(ctx context.Context, c tui.Catalog, id string, f model.Fields) int {
	if err := c.UpdateItem(ctx, id, f); err != nil {
		ui.Fail("update: " + err.Error())
		return 1
	}
	ui.OK("updated " + id)
	return 0
}

func doRemove(ctx context.Context, c tui.Catalog, id string) int {
	if err := c.RemoveItem(ctx, id); err != nil {
		ui.Fail("rm: " + err.Error())
		return 1
	}
	ui.OK("removed " + id)
	return 0
}

func doSeed(ctx context.Context, c tui.Catalog) int {
	seeded, err := c.SeedIfEmpty(ctx)
	if err != nil {
		ui.Fail("seed: " + err.Error())
		return 1
	}
	if seeded {
		ui.OK("examples added")
	} else {
		ui.Info("catalog already has items")
	}
	return 0
}

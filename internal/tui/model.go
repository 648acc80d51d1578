package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/travelgrid/internal/model"
	"github.com/Makepad-fr/travelgrid/internal/view"
)

// Catalog is what the screen needs from catalog.Service.
type Catalog interface {
	Backend() string
	FetchItems(ctx context.Context) ([]model.Item, error)
	AddItem(ctx context.Context, f model.Fields) (string, error)
	RemoveItem(ctx context.Context, id string) error
	UpdateItem(ctx context.Context, id string, f model.Fields) error
	OverwriteItem(ctx context.Context, id string, f model.Fields) error
	SeedIfEmpty(ctx context.Context) (bool, error)
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeConfirm
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeDanger
)

const defaultNoticeTTL = 2 * time.Second

type notice struct {
	kind noticeKind
	text string
	seq  int
}

// messages produced by commands
type (
	loadedMsg struct {
		items []model.Item
		err   error
	}
	seededMsg struct {
		seeded bool
		err    error
	}
	savedMsg struct {
		text string
		err  error
	}
	noticeExpiredMsg struct{ seq int }
)

// Model is the Bubble Tea model of the catalog screen.
// items is the snapshot of the last successful fetch and is only ever
// replaced, never edited in place.
type Model struct {
	ctx context.Context
	svc Catalog

	items  []model.Item
	loaded bool

	categories []string
	category   string // "" for all

	list   list.Model
	search textinput.Model
	form   itemForm
	help   help.Model

	mode      mode
	confirmID string

	notice    *notice
	noticeSeq int
	noticeTTL time.Duration

	width, height int
}

// New builds the screen. Nothing is fetched until Init runs.
func New(ctx context.Context, svc Catalog) Model {
	l := list.New(nil, cardDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.PaginationStyle = helpStyle

	s := textinput.New()
	s.Prompt = "/ "
	s.Placeholder = "buscar por título ou país..."
	s.CharLimit = 100

	return Model{
		ctx:        ctx,
		svc:        svc,
		categories: view.Categories(nil),
		list:       l,
		search:     s,
		form:       newItemForm(),
		help:       help.New(),
		noticeTTL:  defaultNoticeTTL,
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd { return m.load() }

// ---------------------------------------------------
// commands
// ---------------------------------------------------

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		items, err := m.svc.FetchItems(m.ctx)
		return loadedMsg{items: items, err: err}
	}
}

func (m Model) seed() tea.Cmd {
	return func() tea.Msg {
		seeded, err := m.svc.SeedIfEmpty(m.ctx)
		return seededMsg{seeded: seeded, err: err}
	}
}

func (m Model) remove(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.svc.RemoveItem(m.ctx, id)
		return savedMsg{text: "Item removido.", err: err}
	}
}

func (m Model) save(id string, f model.Fields) tea.Cmd {
	return func() tea.Msg {
		if id != "" {
			// the form holds every field, so blanks must clear
			err := m.svc.OverwriteItem(m.ctx, id, f)
			return savedMsg{text: "Item atualizado.", err: err}
		}
		_, err := m.svc.AddItem(m.ctx, f)
		return savedMsg{text: "Item adicionado.", err: err}
	}
}

// notify shows text until noticeTTL passes or another notice replaces it.
func (m *Model) notify(kind noticeKind, text string) tea.Cmd {
	m.noticeSeq++
	seq := m.noticeSeq
	m.notice = &notice{kind: kind, text: text, seq: seq}
	return tea.Tick(m.noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

// ---------------------------------------------------
// state helpers
// ---------------------------------------------------

func (m *Model) currentCategory() string { return m.category }

// nextCategory cycles all -> each category -> all. A selected category that
// is no longer listed restarts the cycle at the first one.
func (m *Model) nextCategory() {
	for i, c := range m.categories {
		if c == m.category {
			if i+1 < len(m.categories) {
				m.category = m.categories[i+1]
			} else {
				m.category = ""
			}
			return
		}
	}
	if len(m.categories) > 0 {
		m.category = m.categories[0]
	}
}

// visible applies the category and search filters to the snapshot.
func (m *Model) visible() []model.Item {
	return view.Filter(m.items, m.currentCategory(), m.search.Value())
}

// render rebuilds the card list from the snapshot. It never fetches.
func (m *Model) render() {
	vis := m.visible()
	cards := make([]view.Card, 0, len(vis))
	for _, it := range vis {
		cards = append(cards, view.CardOf(it))
	}
	m.list.SetItems(cardItems(cards))
}

func (m *Model) selectedID() string {
	if it, ok := m.list.SelectedItem().(cardItem); ok {
		return it.card.ID
	}
	return ""
}

func (m *Model) resize() {
	used := 7 // header, filters, notice, help, borders
	if m.mode == modeForm {
		used += fieldCount + 4
	}
	h := m.height - used
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
	m.help.Width = m.width - 4
}

// ---------------------------------------------------
// update
// ---------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			return m, m.notify(noticeDanger, "Falha ao carregar dados.")
		}
		m.items = msg.items
		m.loaded = true
		m.categories = view.Categories(m.items)
		m.render()
		return m, nil

	case seededMsg:
		if msg.err != nil {
			return m, m.notify(noticeDanger, "Falha ao adicionar exemplos: "+msg.err.Error())
		}
		text, kind := "Já existem itens cadastrados.", noticeInfo
		if msg.seeded {
			text, kind = "Exemplos adicionados.", noticeSuccess
		}
		return m, tea.Batch(m.notify(kind, text), m.load())

	case savedMsg:
		if msg.err != nil {
			return m, m.notify(noticeDanger, "Falha ao salvar: "+msg.err.Error())
		}
		return m, tea.Batch(m.notify(noticeSuccess, msg.text), m.load())

	case noticeExpiredMsg:
		if m.notice != nil && m.notice.seq == msg.seq {
			m.notice = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modeForm:
		cmd = m.form.update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Reload):
		return m, m.load()
	case key.Matches(msg, keys.Seed):
		return m, m.seed()
	case key.Matches(msg, keys.Category):
		m.nextCategory()
		m.render()
		return m, nil
	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, keys.Add):
		m.form.reset()
		m.mode = modeForm
		m.resize()
		return m, m.form.focusOn(fieldTitle)
	case key.Matches(msg, keys.Edit):
		it, ok := view.Find(m.items, m.selectedID())
		if !ok {
			return m, nil
		}
		m.form.fill(it)
		m.mode = modeForm
		m.resize()
		return m, m.form.focusOn(fieldTitle)
	case key.Matches(msg, keys.Delete):
		if id := m.selectedID(); id != "" {
			m.confirmID = id
			m.mode = modeConfirm
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.mode = modeBrowse
		m.render()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.render()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.reset()
		m.mode = modeBrowse
		m.resize()
		return m, nil
	case "tab", "down":
		return m, m.form.next()
	case "shift+tab", "up":
		return m, m.form.prev()
	case "enter":
		if m.form.focus < fieldCount-1 {
			return m, m.form.next()
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	}
	return m, m.form.update(msg)
}

// submit updates when the form carries an id, creates otherwise.
func (m Model) submit() (tea.Model, tea.Cmd) {
	f, err := m.form.fields()
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}
	id := m.form.id
	m.form.reset()
	m.mode = modeBrowse
	m.resize()
	return m, m.save(id, f)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmID
	m.confirmID = ""
	m.mode = modeBrowse
	switch msg.String() {
	case "y", "Y", "s", "S":
		return m, m.remove(id)
	}
	return m, nil
}

// ---------------------------------------------------
// view
// ---------------------------------------------------

func (m Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s  %s",
		titleStyle.Render("TravelGrid"),
		badgeStyle.Render("["+m.svc.Backend()+"]"),
		accentStyle.Render(fmt.Sprintf("%d/%d itens", len(m.visible()), len(m.items))),
	)
	b.WriteString(header + "\n")

	cat := "Todas"
	if c := m.currentCategory(); c != "" {
		cat = c
	}
	searchLine := m.search.View()
	if m.mode != modeSearch && m.search.Value() == "" {
		searchLine = mutedStyle.Render("/ buscar")
	}
	b.WriteString(fmt.Sprintf("Categoria: %s   %s\n", badgeStyle.Render(cat), searchLine))

	if m.mode == modeForm {
		b.WriteString(m.form.view() + "\n")
	}

	switch {
	case m.loaded && len(m.items) == 0:
		b.WriteString(mutedStyle.Render("Nenhum destino cadastrado.") + " " +
			hintStyle.Render(" s: adicionar exemplos ") + "\n")
	case len(m.list.Items()) == 0:
		b.WriteString(mutedStyle.Render("Nenhum destino encontrado.") + "\n")
	default:
		b.WriteString(m.list.View() + "\n")
	}

	if m.mode == modeConfirm {
		b.WriteString(errorStyle.Render("Remover este item? (y/n)") + "\n")
	}
	if m.notice != nil {
		b.WriteString(noticeStyle(m.notice.kind).Render(m.notice.text) + "\n")
	}
	b.WriteString(m.help.View(keys))

	return boxStyle.Render(b.String())
}

// Run starts the interactive screen and blocks until the user quits.
func Run(ctx context.Context, svc Catalog) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

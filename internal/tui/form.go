package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/travelgrid/internal/model"
)

const (
	fieldTitle = iota
	fieldCategory
	fieldImage
	fieldCountry
	fieldYear
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldTitle:       "Título",
	fieldCategory:    "Categoria",
	fieldImage:       "Imagem (URL)",
	fieldCountry:     "País",
	fieldYear:        "Ano",
	fieldDescription: "Descrição",
}

// itemForm is the create/edit form. id is the hidden field: empty means the
// submit creates a new item, otherwise it updates that id.
type itemForm struct {
	id     string
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newItemForm() itemForm {
	var f itemForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "Praia do Forte"
	f.inputs[fieldImage].Placeholder = "https://..."
	f.inputs[fieldYear].CharLimit = 4
	f.inputs[fieldDescription].CharLimit = 500
	return f
}

// reset clears every field and the hidden id.
func (f *itemForm) reset() {
	f.id = ""
	f.err = ""
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
}

// fill loads it into the form for editing.
func (f *itemForm) fill(it model.Item) {
	f.reset()
	f.id = it.ID
	f.inputs[fieldTitle].SetValue(it.Title)
	f.inputs[fieldCategory].SetValue(it.Category)
	f.inputs[fieldImage].SetValue(it.Image)
	f.inputs[fieldCountry].SetValue(it.Country)
	if it.Year != 0 {
		f.inputs[fieldYear].SetValue(strconv.Itoa(it.Year))
	}
	f.inputs[fieldDescription].SetValue(it.Description)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
}

func (f *itemForm) focusOn(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *itemForm) next() tea.Cmd { return f.focusOn(f.focus + 1) }
func (f *itemForm) prev() tea.Cmd { return f.focusOn(f.focus - 1) }

func (f *itemForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

var (
	errTitleRequired = errors.New("o título é obrigatório")
	errYearInvalid   = errors.New("ano deve ser um número")
)

// fields reads the form into model.Fields, enforcing the form-level rules.
func (f *itemForm) fields() (model.Fields, error) {
	val := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

	out := model.Fields{
		Title:       val(fieldTitle),
		Category:    val(fieldCategory),
		Image:       val(fieldImage),
		Country:     val(fieldCountry),
		Description: val(fieldDescription),
	}
	if out.Title == "" {
		return model.Fields{}, errTitleRequired
	}
	if y := val(fieldYear); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			return model.Fields{}, errYearInvalid
		}
		out.Year = n
	}
	return out, nil
}

func (f *itemForm) view() string {
	var b strings.Builder
	title := "Novo destino"
	if f.id != "" {
		title = "Editar destino " + mutedStyle.Render(f.id)
	}
	if f.err != "" {
		title += " — " + errorStyle.Render(f.err)
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	for i := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			label = accentStyle.Render("> " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label + ": " + f.inputs[i].View() + "\n")
	}
	b.WriteString(helpStyle.Render("tab next • shift+tab prev • ctrl+s save • esc cancel"))
	return boxStyle.Render(b.String())
}

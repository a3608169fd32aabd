// Package tui implements the interactive invoice entry form.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/billforge/billforge/internal/cli"
	"github.com/billforge/billforge/internal/invoice"
	"github.com/billforge/billforge/internal/model"
	"github.com/billforge/billforge/internal/predict"
)

// Suggester produces suggested terms for the collected invoice attributes.
type Suggester interface {
	Predict(in predict.Input) model.SuggestionBundle
}

// field is one prompt of the form.
type field struct {
	apply       func(*model.Invoice, string) error
	label       string
	placeholder string
}

func fields() []field {
	return []field{
		{label: "Client contact name", placeholder: "Sarah Johnson",
			apply: func(inv *model.Invoice, v string) error { inv.ClientName = v; return nil }},
		{label: "Client company", placeholder: "InnovateCorp",
			apply: func(inv *model.Invoice, v string) error { inv.ClientCompany = v; return nil }},
		{label: "Client address", placeholder: "456 Business Avenue, New York, NY 10001",
			apply: func(inv *model.Invoice, v string) error { inv.ClientAddress = v; return nil }},
		{label: "Client email", placeholder: "billing@innovatecorp.com",
			apply: func(inv *model.Invoice, v string) error { inv.ClientEmail = v; return nil }},
		{label: "Project name", placeholder: "Cloud Migration Initiative",
			apply: func(inv *model.Invoice, v string) error { inv.ProjectName = v; return nil }},
		{label: "Project scope", placeholder: "Short description of the engagement",
			apply: func(inv *model.Invoice, v string) error { inv.ProjectScope = v; return nil }},
		{label: "Service category", placeholder: strings.Join(model.ServiceCategories[:4], ", ") + ", ...",
			apply: func(inv *model.Invoice, v string) error { inv.ServiceCategory = v; return nil }},
		{label: "Client industry", placeholder: strings.Join(model.ClientIndustries, ", "),
			apply: func(inv *model.Invoice, v string) error { inv.ClientIndustry = v; return nil }},
		{label: "Country", placeholder: strings.Join(model.Countries, ", "),
			apply: func(inv *model.Invoice, v string) error { inv.Country = v; return nil }},
		{label: "Project type", placeholder: strings.Join(model.ProjectTypes, ", "),
			apply: func(inv *model.Invoice, v string) error { inv.ProjectType = v; return nil }},
	}
}

// Form stages.
const (
	stageFields = iota
	stageItemDescription
	stageItemHours
	stageItemRate
	stageItemAnother
	stageConfirm
)

// Model is the bubbletea model for invoice entry.
type Model struct {
	suggester  Suggester
	err        string
	input      textinput.Model
	itemDraft  model.LineItem
	draft      model.Invoice
	suggestion model.SuggestionBundle
	fields     []field
	fieldIndex int
	stage      int
	done       bool
	canceled   bool
}

// New creates the invoice entry form. The suggester is consulted once all
// line items are known.
func New(suggester Suggester) Model {
	input := textinput.New()
	input.CharLimit = 120
	input.Focus()

	m := Model{
		suggester: suggester,
		input:     input,
		fields:    fields(),
	}
	m.preparePrompt()
	return m
}

// Invoice returns the completed draft. Valid only when Done reports true.
func (m Model) Invoice() model.Invoice { return m.draft }

// Done reports whether the form completed successfully.
func (m Model) Done() bool { return m.done }

// Canceled reports whether the user aborted the form.
func (m Model) Canceled() bool { return m.canceled }

// Init returns initial commands.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.canceled = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	m.err = ""

	switch m.stage {
	case stageFields:
		if value == "" {
			m.err = "required"
			return m, nil
		}
		if err := m.fields[m.fieldIndex].apply(&m.draft, value); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.fieldIndex++
		if m.fieldIndex >= len(m.fields) {
			m.stage = stageItemDescription
		}

	case stageItemDescription:
		if value == "" {
			m.err = "required"
			return m, nil
		}
		m.itemDraft = model.LineItem{Description: value}
		m.stage = stageItemHours

	case stageItemHours:
		hours, err := strconv.Atoi(value)
		if err != nil || hours <= 0 {
			m.err = "enter a positive whole number of hours"
			return m, nil
		}
		m.itemDraft.Hours = hours
		m.stage = stageItemRate

	case stageItemRate:
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate <= 0 {
			m.err = "enter a positive hourly rate"
			return m, nil
		}
		m.itemDraft.Rate = rate
		m.draft.Items = append(m.draft.Items, m.itemDraft)
		m.stage = stageItemAnother

	case stageItemAnother:
		if strings.EqualFold(value, "y") || strings.EqualFold(value, "yes") {
			m.stage = stageItemDescription
		} else {
			m.computeSuggestion()
			m.stage = stageConfirm
		}

	case stageConfirm:
		m.draft.Discount = m.suggestion.Discount
		m.draft.TaxRate = m.suggestion.TaxRate
		m.draft.PaymentTerms = m.suggestion.PaymentTerms
		m.draft.DocComplexity = m.suggestion.DocComplexity
		m.draft.Notes = m.suggestion.ServiceNotes
		m.done = true
		return m, tea.Quit
	}

	m.preparePrompt()
	return m, nil
}

func (m *Model) computeSuggestion() {
	totals := invoice.CalculateTotals(m.draft.Items, 0, 0)
	m.suggestion = m.suggester.Predict(predict.Input{
		ServiceCategory: m.draft.ServiceCategory,
		ClientIndustry:  m.draft.ClientIndustry,
		Country:         m.draft.Country,
		ProjectType:     m.draft.ProjectType,
		TotalAmount:     totals.Subtotal,
		TotalHours:      totals.TotalHours,
		NumServices:     len(m.draft.Items),
	})
}

func (m *Model) preparePrompt() {
	m.input.SetValue("")
	switch m.stage {
	case stageFields:
		m.input.Placeholder = m.fields[m.fieldIndex].placeholder
	case stageItemDescription:
		m.input.Placeholder = "Initial Consultation & Analysis"
	case stageItemHours:
		m.input.Placeholder = "10"
	case stageItemRate:
		m.input.Placeholder = "150.00"
	case stageItemAnother:
		m.input.Placeholder = "y/N"
	case stageConfirm:
		m.input.Placeholder = "press enter to accept"
	}
}

// View renders the form.
func (m Model) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("New Invoice") + "\n\n")

	switch m.stage {
	case stageFields:
		b.WriteString(cli.LabelStyle.Render(m.fields[m.fieldIndex].label+":") + "\n")
	case stageItemDescription:
		b.WriteString(fmt.Sprintf("Service item %d - description:\n", len(m.draft.Items)+1))
	case stageItemHours:
		b.WriteString(fmt.Sprintf("Service item %d - hours:\n", len(m.draft.Items)+1))
	case stageItemRate:
		b.WriteString(fmt.Sprintf("Service item %d - hourly rate ($):\n", len(m.draft.Items)+1))
	case stageItemAnother:
		b.WriteString("Add another service item?\n")
	case stageConfirm:
		b.WriteString(cli.RenderSuggestion(m.suggestion) + "\n")
		b.WriteString("Accept these terms and finish the invoice:\n")
	}

	b.WriteString(m.input.View() + "\n")
	if m.err != "" {
		b.WriteString(cli.ErrorStyle.Render(m.err) + "\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(cli.SubtleColor).Render("enter to continue - esc to cancel"))
	return b.String()
}

// Run drives the form to completion and returns the entered invoice.
func Run(suggester Suggester) (*model.Invoice, error) {
	program := tea.NewProgram(New(suggester))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("form failed: %w", err)
	}

	form, ok := final.(Model)
	if !ok || form.Canceled() || !form.Done() {
		return nil, nil
	}
	inv := form.Invoice()
	return &inv, nil
}

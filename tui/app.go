// Package tui is the terminal front end. It follows the bubbletea model: all
// state lives in App, API calls run as commands and come back as messages.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"healthtrack/apiclient"
	"healthtrack/models"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// API is the part of the API client the views use.
type API interface {
	GetStats(ctx context.Context) (*apiclient.Stats, error)

	GetClients(ctx context.Context) ([]models.Client, error)
	SearchClients(ctx context.Context, name string) ([]models.Client, error)
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	CreateClient(ctx context.Context, req apiclient.ClientRequest) (*models.Client, error)
	UpdateClient(ctx context.Context, id uint, req apiclient.ClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, id uint) error

	GetPrograms(ctx context.Context) ([]models.Program, error)
	GetProgram(ctx context.Context, id uint) (*models.Program, error)
	CreateProgram(ctx context.Context, req apiclient.ProgramRequest) (*models.Program, error)
	UpdateProgram(ctx context.Context, id uint, req apiclient.ProgramRequest) (*models.Program, error)
	DeleteProgram(ctx context.Context, id uint) error

	CreateBulkEnrollments(ctx context.Context, clientID uint, programIDs []uint) ([]models.Enrollment, error)
	RemoveClientFromProgram(ctx context.Context, clientID, programID uint) error
}

// appState represents which screen is showing
type appState int

const (
	stateDashboard appState = iota
	stateClients
	stateClientDetail
	stateClientForm
	statePrograms
	stateProgramDetail
	stateProgramForm
	stateEnrollForm
)

// parent is where esc leads from each screen.
var parent = map[appState]appState{
	stateClients:       stateDashboard,
	statePrograms:      stateDashboard,
	stateClientDetail:  stateClients,
	stateClientForm:    stateClients,
	stateProgramDetail: statePrograms,
	stateProgramForm:   statePrograms,
	stateEnrollForm:    stateClientDetail,
}

type App struct {
	api   API
	ctx   context.Context
	state appState

	stats *apiclient.Stats

	clients      []models.Client
	clientTable  table.Model
	search       textinput.Model
	searching    bool
	searchTerm   string
	client       *models.Client
	enrollTable  table.Model
	clientForm   form
	editClientID uint // 0 while creating

	programs      []models.Program
	programTable  table.Model
	program       *models.Program
	memberTable   table.Model
	programForm   form
	editProgramID uint     // 0 while creating
	programBack   appState // screen the program form returns to on esc
	enrollOptions []enrollOption
	enrollCursor  int

	status string
	err    error

	width  int
	height int
}

type enrollOption struct {
	program  models.Program
	enrolled bool // already enrolled, not selectable
	selected bool
}

// NewApp creates the UI on top of api.
func NewApp(ctx context.Context, api API) *App {
	search := newInput("search by name")
	search.Prompt = "/ "

	return &App{
		api:   api,
		ctx:   ctx,
		state: stateDashboard,

		clientTable: newTable([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 24},
			{Title: "Age", Width: 5},
			{Title: "Gender", Width: 10},
			{Title: "Phone", Width: 14},
		}),
		enrollTable: newTable([]table.Column{
			{Title: "Program", Width: 28},
			{Title: "Enrolled", Width: 18},
		}),
		programTable: newTable([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 24},
			{Title: "Description", Width: 40},
		}),
		memberTable: newTable([]table.Column{
			{Title: "Client", Width: 24},
			{Title: "Phone", Width: 14},
			{Title: "Enrolled", Width: 18},
		}),
		search: search,
	}
}

func newTable(columns []table.Column) table.Model {
	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, api API) error {
	_, err := tea.NewProgram(NewApp(ctx, api), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return a.loadStats()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case errMsg:
		a.err = msg.err
		a.status = ""
		return a, nil

	case statsLoadedMsg:
		a.stats = msg.stats
		return a, nil

	case clientsLoadedMsg:
		a.clients = msg.clients
		a.clientTable.SetRows(clientRows(msg.clients))
		a.clientTable.SetCursor(0)
		return a, nil

	case clientLoadedMsg:
		a.client = msg.client
		a.enrollTable.SetRows(enrollmentRows(msg.client.Enrollments))
		a.enrollTable.SetCursor(0)
		a.state = stateClientDetail
		return a, nil

	case programsLoadedMsg:
		a.programs = msg.programs
		a.programTable.SetRows(programRows(msg.programs))
		a.programTable.SetCursor(0)
		if a.state == stateEnrollForm {
			a.enrollOptions = buildEnrollOptions(msg.programs, a.client)
			a.enrollCursor = 0
		}
		return a, nil

	case programLoadedMsg:
		a.program = msg.program
		a.memberTable.SetRows(memberRows(msg.program.Enrollments))
		a.memberTable.SetCursor(0)
		a.state = stateProgramDetail
		return a, nil

	case doneMsg:
		a.err = nil
		a.status = msg.status
		if msg.next != nil {
			a.state = *msg.next
		}
		return a, msg.reload

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// text entry screens get every key except esc/enter
	switch {
	case a.state == stateClientForm:
		return a.updateClientForm(msg)
	case a.state == stateProgramForm:
		return a.updateProgramForm(msg)
	case a.state == stateClients && a.searching:
		return a.updateSearch(msg)
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "esc":
		if p, ok := parent[a.state]; ok {
			a.state = p
			a.err = nil
			return a, a.reloadFor(p)
		}
		return a, nil
	}

	switch a.state {
	case stateDashboard:
		switch key {
		case "c":
			a.state = stateClients
			return a, a.loadClients()
		case "p":
			a.state = statePrograms
			return a, a.loadPrograms()
		case "r":
			return a, a.loadStats()
		}

	case stateClients:
		switch key {
		case "/":
			a.searching = true
			a.search.SetValue(a.searchTerm)
			a.search.Focus()
			return a, nil
		case "n":
			a.editClientID = 0
			a.clientForm = newForm("New client", "Name", "Age", "Gender", "Phone", "Address")
			a.state = stateClientForm
			return a, nil
		case "enter":
			if c := a.selectedClient(); c != nil {
				return a, a.loadClient(c.ID)
			}
			return a, nil
		case "d":
			if c := a.selectedClient(); c != nil {
				return a, a.deleteClient(c.ID)
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.clientTable, cmd = a.clientTable.Update(msg)
		return a, cmd

	case stateClientDetail:
		switch key {
		case "e":
			a.state = stateEnrollForm
			return a, a.loadPrograms()
		case "u":
			a.editClientID = a.client.ID
			a.clientForm = newForm("Edit client", "Name", "Age", "Gender", "Phone", "Address")
			a.clientForm.setValues(a.client.Name, strconv.Itoa(a.client.Age), a.client.Gender, a.client.Phone, a.client.Address)
			a.state = stateClientForm
			return a, nil
		case "x":
			if e := a.selectedEnrollment(); e != nil {
				return a, a.removeEnrollment(a.client.ID, e.ProgramID)
			}
			return a, nil
		case "d":
			return a, a.deleteClient(a.client.ID)
		}
		var cmd tea.Cmd
		a.enrollTable, cmd = a.enrollTable.Update(msg)
		return a, cmd

	case stateEnrollForm:
		return a.updateEnrollForm(key)

	case statePrograms:
		switch key {
		case "n":
			a.editProgramID = 0
			a.programBack = statePrograms
			a.programForm = newForm("New program", "Name", "Description")
			a.state = stateProgramForm
			return a, nil
		case "u":
			if p := a.selectedProgram(); p != nil {
				a.editProgram(p)
			}
			return a, nil
		case "enter":
			if p := a.selectedProgram(); p != nil {
				return a, a.loadProgram(p.ID)
			}
			return a, nil
		case "d":
			if p := a.selectedProgram(); p != nil {
				return a, a.deleteProgram(p.ID)
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.programTable, cmd = a.programTable.Update(msg)
		return a, cmd

	case stateProgramDetail:
		switch key {
		case "u":
			a.editProgram(a.program)
			return a, nil
		case "x":
			if e := a.selectedMember(); e != nil {
				return a, a.removeMember(a.program.ID, e.ClientID)
			}
			return a, nil
		case "d":
			return a, a.deleteProgram(a.program.ID)
		}
		var cmd tea.Cmd
		a.memberTable, cmd = a.memberTable.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searching = false
		a.search.Blur()
		return a, nil
	case "enter":
		a.searching = false
		a.search.Blur()
		a.searchTerm = strings.TrimSpace(a.search.Value())
		return a, a.loadClients()
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a *App) updateClientForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if a.editClientID != 0 {
			a.state = stateClientDetail
		} else {
			a.state = stateClients
		}
		return a, nil
	case "enter":
		v := a.clientForm.values()
		age, err := strconv.Atoi(v[1])
		if err != nil {
			a.err = errors.New("Age must be a number")
			return a, nil
		}
		req := apiclient.ClientRequest{Name: v[0], Age: age, Gender: v[2], Phone: v[3], Address: v[4]}
		return a, a.saveClient(a.editClientID, req)
	}
	return a, a.clientForm.update(msg)
}

// editProgram opens the program form filled with p.
func (a *App) editProgram(p *models.Program) {
	desc := ""
	if p.Description != nil {
		desc = *p.Description
	}
	a.editProgramID = p.ID
	a.programBack = a.state
	a.programForm = newForm("Edit program", "Name", "Description")
	a.programForm.setValues(p.Name, desc)
	a.state = stateProgramForm
}

func (a *App) updateProgramForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.state = a.programBack
		return a, nil
	case "enter":
		v := a.programForm.values()
		req := apiclient.ProgramRequest{Name: v[0]}
		if v[1] != "" {
			req.Description = &v[1]
		}
		if a.editProgramID != 0 {
			return a, a.updateProgram(a.editProgramID, req)
		}
		return a, a.createProgram(req)
	}
	return a, a.programForm.update(msg)
}

func (a *App) updateEnrollForm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if a.enrollCursor > 0 {
			a.enrollCursor--
		}
	case "down", "j":
		if a.enrollCursor < len(a.enrollOptions)-1 {
			a.enrollCursor++
		}
	case " ", "space":
		if a.enrollCursor < len(a.enrollOptions) {
			opt := &a.enrollOptions[a.enrollCursor]
			if !opt.enrolled {
				opt.selected = !opt.selected
			}
		}
	case "enter":
		var ids []uint
		for _, opt := range a.enrollOptions {
			if opt.selected {
				ids = append(ids, opt.program.ID)
			}
		}
		if len(ids) == 0 {
			a.err = errors.New("Select at least one program")
			return a, nil
		}
		return a, a.enroll(a.client.ID, ids)
	}
	return a, nil
}

func (a *App) reloadFor(state appState) tea.Cmd {
	switch state {
	case stateDashboard:
		return a.loadStats()
	case stateClients:
		return a.loadClients()
	case statePrograms:
		return a.loadPrograms()
	case stateClientDetail:
		if a.client != nil {
			return a.loadClient(a.client.ID)
		}
	}
	return nil
}

func (a *App) selectedClient() *models.Client {
	i := a.clientTable.Cursor()
	if i < 0 || i >= len(a.clients) {
		return nil
	}
	return &a.clients[i]
}

func (a *App) selectedProgram() *models.Program {
	i := a.programTable.Cursor()
	if i < 0 || i >= len(a.programs) {
		return nil
	}
	return &a.programs[i]
}

func (a *App) selectedMember() *models.Enrollment {
	if a.program == nil {
		return nil
	}
	i := a.memberTable.Cursor()
	if i < 0 || i >= len(a.program.Enrollments) {
		return nil
	}
	return &a.program.Enrollments[i]
}

func (a *App) selectedEnrollment() *models.Enrollment {
	if a.client == nil {
		return nil
	}
	i := a.enrollTable.Cursor()
	if i < 0 || i >= len(a.client.Enrollments) {
		return nil
	}
	return &a.client.Enrollments[i]
}

func buildEnrollOptions(programs []models.Program, client *models.Client) []enrollOption {
	enrolled := map[uint]bool{}
	if client != nil {
		for _, e := range client.Enrollments {
			enrolled[e.ProgramID] = true
		}
	}
	opts := make([]enrollOption, 0, len(programs))
	for _, p := range programs {
		opts = append(opts, enrollOption{program: p, enrolled: enrolled[p.ID]})
	}
	return opts
}

// View

func (a *App) View() string {
	var body string
	switch a.state {
	case stateDashboard:
		body = a.dashboardView()
	case stateClients:
		body = a.clientsView()
	case stateClientDetail:
		body = a.clientDetailView()
	case stateClientForm:
		body = a.clientForm.view()
	case statePrograms:
		body = a.programsView()
	case stateProgramDetail:
		body = a.programDetailView()
	case stateProgramForm:
		body = a.programForm.view()
	case stateEnrollForm:
		body = a.enrollView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", a.statusLine())
}

func (a *App) statusLine() string {
	if a.err != nil {
		return errorStyle.Render(describeError(a.err))
	}
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}

func (a *App) dashboardView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("HealthTrack") + "\n\n")

	if a.stats != nil {
		boxes := []string{
			statBox("Clients", a.stats.Clients),
			statBox("Programs", a.stats.Programs),
			statBox("Enrollments", a.stats.Enrollments),
			statBox("Today", a.stats.EnrolledToday),
			statBox("This week", a.stats.EnrolledThisWeek),
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...) + "\n\n")
	} else {
		b.WriteString(mutedStyle.Render("loading…") + "\n\n")
	}

	b.WriteString(helpStyle.Render("c clients • p programs • r refresh • q quit"))
	return b.String()
}

func statBox(label string, n int64) string {
	return statBoxStyle.Render(fmt.Sprintf("%s\n%d", labelStyle.UnsetWidth().Render(label), n))
}

func (a *App) clientsView() string {
	var b strings.Builder
	title := "Clients"
	if a.searchTerm != "" {
		title = fmt.Sprintf("Clients matching %q", a.searchTerm)
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")
	if a.searching {
		b.WriteString(a.search.View() + "\n\n")
	}
	if len(a.clients) == 0 {
		b.WriteString(mutedStyle.Render("No clients found") + "\n")
	} else {
		b.WriteString(a.clientTable.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("/ search • enter open • n new • d delete • esc back"))
	return b.String()
}

func (a *App) clientDetailView() string {
	c := a.client
	if c == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Name) + "\n\n")
	b.WriteString(field("Age", strconv.Itoa(c.Age)))
	b.WriteString(field("Gender", c.Gender))
	b.WriteString(field("Phone", c.Phone))
	b.WriteString(field("Address", c.Address))
	b.WriteString(field("Since", c.CreatedAt.Format("2006-01-02")))
	b.WriteString("\n")

	if len(c.Enrollments) == 0 {
		b.WriteString(mutedStyle.Render("Not enrolled in any program") + "\n")
	} else {
		b.WriteString(a.enrollTable.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("e enroll • x remove enrollment • u edit • d delete • esc back"))
	return b.String()
}

func (a *App) programsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Programs") + "\n\n")
	if len(a.programs) == 0 {
		b.WriteString(mutedStyle.Render("No programs yet") + "\n")
	} else {
		b.WriteString(a.programTable.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter open • n new • u edit • d delete • esc back"))
	return b.String()
}

func (a *App) programDetailView() string {
	p := a.program
	if p == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Name) + "\n\n")
	if p.Description != nil {
		b.WriteString(field("About", *p.Description))
	}
	b.WriteString(field("Created", p.CreatedAt.Format("2006-01-02")))
	b.WriteString(field("Enrolled", strconv.Itoa(len(p.Enrollments))))
	b.WriteString("\n")

	if len(p.Enrollments) > 0 {
		b.WriteString(a.memberTable.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("x remove client • u edit • d delete • esc back"))
	return b.String()
}

func (a *App) enrollView() string {
	var b strings.Builder
	name := ""
	if a.client != nil {
		name = a.client.Name
	}
	b.WriteString(titleStyle.Render("Enroll "+name) + "\n\n")

	if len(a.enrollOptions) == 0 {
		b.WriteString(mutedStyle.Render("No programs available") + "\n")
	}
	for i, opt := range a.enrollOptions {
		pointer := "  "
		if i == a.enrollCursor {
			pointer = cursorStyle.Render("> ")
		}
		box := "[ ]"
		line := opt.program.Name
		switch {
		case opt.enrolled:
			box = mutedStyle.Render("[-]")
			line = mutedStyle.Render(line + " (enrolled)")
		case opt.selected:
			box = checkedStyle.Render("[x]")
		}
		b.WriteString(pointer + box + " " + line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("space select • enter enroll • esc cancel"))
	return b.String()
}

func field(label, value string) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(value) + "\n"
}

func clientRows(clients []models.Client) []table.Row {
	rows := make([]table.Row, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, table.Row{
			strconv.FormatUint(uint64(c.ID), 10), c.Name, strconv.Itoa(c.Age), c.Gender, c.Phone,
		})
	}
	return rows
}

func programRows(programs []models.Program) []table.Row {
	rows := make([]table.Row, 0, len(programs))
	for _, p := range programs {
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		rows = append(rows, table.Row{strconv.FormatUint(uint64(p.ID), 10), p.Name, desc})
	}
	return rows
}

func enrollmentRows(enrollments []models.Enrollment) []table.Row {
	rows := make([]table.Row, 0, len(enrollments))
	for _, e := range enrollments {
		name := fmt.Sprintf("#%d", e.ProgramID)
		if e.Program != nil {
			name = e.Program.Name
		}
		rows = append(rows, table.Row{name, e.EnrolledAt.Format("2006-01-02 15:04")})
	}
	return rows
}

func memberRows(enrollments []models.Enrollment) []table.Row {
	rows := make([]table.Row, 0, len(enrollments))
	for _, e := range enrollments {
		name, phone := fmt.Sprintf("#%d", e.ClientID), ""
		if e.Client != nil {
			name, phone = e.Client.Name, e.Client.Phone
		}
		rows = append(rows, table.Row{name, phone, e.EnrolledAt.Format("2006-01-02 15:04")})
	}
	return rows
}

func describeError(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Count != nil {
			return fmt.Sprintf("%s (%d)", apiErr.Message, *apiErr.Count)
		}
		return apiErr.Message
	}
	return err.Error()
}

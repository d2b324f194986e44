package tui

import (
	"fmt"

	"healthtrack/apiclient"
	"healthtrack/models"

	tea "github.com/charmbracelet/bubbletea"
)

type errMsg struct{ err error }

type statsLoadedMsg struct{ stats *apiclient.Stats }

type clientsLoadedMsg struct{ clients []models.Client }

type clientLoadedMsg struct{ client *models.Client }

type programsLoadedMsg struct{ programs []models.Program }

type programLoadedMsg struct{ program *models.Program }

// doneMsg reports a successful mutation: show status, optionally switch screen,
// then run reload.
type doneMsg struct {
	status string
	next   *appState
	reload tea.Cmd
}

func goTo(s appState) *appState { return &s }

func (a *App) loadStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := a.api.GetStats(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return statsLoadedMsg{stats}
	}
}

// loadClients lists all clients, or searches when a search term is set.
func (a *App) loadClients() tea.Cmd {
	term := a.searchTerm
	return func() tea.Msg {
		var (
			clients []models.Client
			err     error
		)
		if term != "" {
			clients, err = a.api.SearchClients(a.ctx, term)
		} else {
			clients, err = a.api.GetClients(a.ctx)
		}
		if err != nil {
			return errMsg{err}
		}
		return clientsLoadedMsg{clients}
	}
}

func (a *App) loadClient(id uint) tea.Cmd {
	return func() tea.Msg {
		client, err := a.api.GetClient(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return clientLoadedMsg{client}
	}
}

func (a *App) loadPrograms() tea.Cmd {
	return func() tea.Msg {
		programs, err := a.api.GetPrograms(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return programsLoadedMsg{programs}
	}
}

func (a *App) loadProgram(id uint) tea.Cmd {
	return func() tea.Msg {
		program, err := a.api.GetProgram(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return programLoadedMsg{program}
	}
}

// saveClient creates a client (id 0) or updates one, then opens its detail view.
func (a *App) saveClient(id uint, req apiclient.ClientRequest) tea.Cmd {
	return func() tea.Msg {
		var (
			client *models.Client
			err    error
		)
		if id == 0 {
			client, err = a.api.CreateClient(a.ctx, req)
		} else {
			client, err = a.api.UpdateClient(a.ctx, id, req)
		}
		if err != nil {
			return errMsg{err}
		}
		return doneMsg{
			status: fmt.Sprintf("Saved client %s", client.Name),
			reload: a.loadClient(client.ID),
		}
	}
}

func (a *App) deleteClient(id uint) tea.Cmd {
	reload := a.loadClients()
	return func() tea.Msg {
		if err := a.api.DeleteClient(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return doneMsg{
			status: "Client deleted",
			next:   goTo(stateClients),
			reload: reload,
		}
	}
}

func (a *App) createProgram(req apiclient.ProgramRequest) tea.Cmd {
	return func() tea.Msg {
		program, err := a.api.CreateProgram(a.ctx, req)
		if err != nil {
			return errMsg{err}
		}
		return doneMsg{
			status: fmt.Sprintf("Created program %s", program.Name),
			next:   goTo(statePrograms),
			reload: a.loadPrograms(),
		}
	}
}

// updateProgram saves the program form and opens the program's detail view.
func (a *App) updateProgram(id uint, req apiclient.ProgramRequest) tea.Cmd {
	return func() tea.Msg {
		program, err := a.api.UpdateProgram(a.ctx, id, req)
		if err != nil {
			return errMsg{err}
		}
		return doneMsg{
			status: fmt.Sprintf("Saved program %s", program.Name),
			reload: a.loadProgram(program.ID),
		}
	}
}

func (a *App) deleteProgram(id uint) tea.Cmd {
	return func() tea.Msg {
		if err := a.api.DeleteProgram(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return doneMsg{
			status: "Program deleted",
			next:   goTo(statePrograms),
			reload: a.loadPrograms(),
		}
	}
}

func (a *App) enroll(clientID uint, programIDs []uint) tea.Cmd {
	return func() tea.Msg {
		created, err := a.api.CreateBulkEnrollments(a.ctx, clientID, programIDs)
		if err != nil {
			return errMsg{err}
		}
		status := fmt.Sprintf("Enrolled in %d program(s)", len(created))
		if skipped := len(programIDs) - len(created); skipped > 0 {
			status += fmt.Sprintf(", %d skipped", skipped)
		}
		return doneMsg{status: status, reload: a.loadClient(clientID)}
	}
}

func (a *App) removeEnrollment(clientID, programID uint) tea.Cmd {
	return func() tea.Msg {
		if err := a.api.RemoveClientFromProgram(a.ctx, clientID, programID); err != nil {
			return errMsg{err}
		}
		return doneMsg{status: "Enrollment removed", reload: a.loadClient(clientID)}
	}
}

// removeMember takes a client off the program shown in the detail view.
func (a *App) removeMember(programID, clientID uint) tea.Cmd {
	return func() tea.Msg {
		if err := a.api.RemoveClientFromProgram(a.ctx, clientID, programID); err != nil {
			return errMsg{err}
		}
		return doneMsg{status: "Client removed from program", reload: a.loadProgram(programID)}
	}
}

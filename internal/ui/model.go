package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"seq/internal/driver"
)

// stageInfo is how a working file is shown: its label and how far along
// the file counts in the overall bar.
type stageInfo struct {
	label  string
	weight float64
}

var stages = map[driver.Stage]stageInfo{
	driver.StageLoad:   {"loading", 0.05},
	driver.StageLex:    {"lexing", 0.2},
	driver.StageExpand: {"expanding", 0.5},
	driver.StagePrint:  {"printing", 0.8},
	driver.StageWrite:  {"writing", 0.95},
}

type fileItem struct {
	path    string
	status  driver.Status
	stage   driver.Stage
	elapsed time.Duration
	err     error
}

func (it fileItem) finished() bool {
	return it.status == driver.StatusDone || it.status == driver.StatusError
}

// expandModel renders per-file progress until its event channel closes.
// Interrupting only stops the rendering; expansion goes on in the background.
type expandModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	byPath  map[string]int
	width   int
	started time.Time
	done    bool
}

type (
	eventMsg driver.Event
	doneMsg  struct{}
)

// NewProgressModel returns a Bubble Tea model showing the progress of files
// as reported on events.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &expandModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accent)),
		prog:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
		started: time.Now(),
	}
	for i, f := range files {
		m.items = append(m.items, fileItem{path: f, status: driver.StatusQueued})
		m.byPath[f] = i
	}
	return m
}

func (m *expandModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *expandModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() != "ctrl+c" {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// listenForEvent waits for the next event; a closed channel means done.
func (m *expandModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

// applyEvent updates the item of ev.File. Unknown files are ignored.
func (m *expandModel) applyEvent(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	it := &m.items[i]
	it.status = ev.Status
	switch ev.Status {
	case driver.StatusWorking:
		it.stage = ev.Stage
	case driver.StatusDone, driver.StatusError:
		if ev.Elapsed > 0 {
			it.elapsed = ev.Elapsed
		}
		if ev.Err != nil {
			it.err = ev.Err
		}
	}
	return m.prog.SetPercent(m.fraction())
}

// fraction is the overall progress; a working file counts by its stage.
func (m *expandModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range m.items {
		switch {
		case it.finished():
			sum++
		case it.status == driver.StatusWorking:
			sum += stages[it.stage].weight
		}
	}
	return sum / float64(len(m.items))
}

func (m *expandModel) counts() (finished, failed int) {
	for _, it := range m.items {
		if it.finished() {
			finished++
		}
		if it.status == driver.StatusError {
			failed++
		}
	}
	return finished, failed
}

func itemLabel(it fileItem) string {
	if it.status != driver.StatusWorking {
		return string(it.status)
	}
	if info, ok := stages[it.stage]; ok {
		return info.label
	}
	return "working"
}

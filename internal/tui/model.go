// ABOUTME: Bubbletea model for the snapshot viewer: scrolling, fsnotify-driven reload, no mutation path

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const (
	headerHeight = 3
	footerHeight = 2
)

type fileChangeMsg struct{}

type reloadCompleteMsg struct {
	snapshot *Snapshot
	err      error
}

// Model is the read-only viewer's bubbletea state.
type Model struct {
	path     string
	snapshot *Snapshot
	watcher  *fsnotify.Watcher

	viewport  viewport.Model
	cursorPos int
	width     int
	height    int
	ready     bool

	lastReload time.Time
	errorMsg   string
}

// New builds a Model that watches path for changes and starts from an
// already-loaded snapshot.
func New(path string, snapshot *Snapshot, watcher *fsnotify.Watcher) Model {
	return Model{path: path, snapshot: snapshot, watcher: watcher, lastReload: time.Now()}
}

func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return tea.EnterAltScreen
	}

	return tea.Batch(tea.EnterAltScreen, waitForFileChange(m.watcher))
}

func waitForFileChange(watcher *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				if event.Op&fsnotify.Write == fsnotify.Write {
					time.Sleep(100 * time.Millisecond)

					return fileChangeMsg{}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func reloadSnapshot(path string) tea.Cmd {
	return func() tea.Msg {
		snap, err := LoadSnapshot(path)

		return reloadCompleteMsg{snapshot: snap, err: err}
	}
}

func (m *Model) entryCount() int {
	if m.snapshot == nil {
		return 0
	}

	return len(m.snapshot.Entries)
}

func (m *Model) ensureCursorVisible() {
	top := m.viewport.YOffset
	bottom := m.viewport.YOffset + m.viewport.Height - 1

	if m.cursorPos < top {
		m.viewport.SetYOffset(m.cursorPos)
	} else if m.cursorPos > bottom {
		m.viewport.SetYOffset(m.cursorPos - m.viewport.Height + 1)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		h := msg.Height - headerHeight - footerHeight
		if h < 1 {
			h = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.viewport.SetContent(m.renderEntries())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}

		return m, nil

	case fileChangeMsg:
		return m, tea.Batch(reloadSnapshot(m.path), waitForFileChange(m.watcher))

	case reloadCompleteMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("reload failed: %v", msg.err)
		} else {
			m.snapshot = msg.snapshot
			m.lastReload = time.Now()
			m.errorMsg = ""

			if m.cursorPos >= m.entryCount() {
				m.cursorPos = m.entryCount() - 1
			}

			if m.cursorPos < 0 {
				m.cursorPos = 0
			}

			m.viewport.SetContent(m.renderEntries())
		}

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursorPos > 0 {
				m.cursorPos--
				m.ensureCursorVisible()
				m.viewport.SetContent(m.renderEntries())
			}

		case key.Matches(msg, keys.Down):
			if m.cursorPos < m.entryCount()-1 {
				m.cursorPos++
				m.ensureCursorVisible()
				m.viewport.SetContent(m.renderEntries())
			}

		case key.Matches(msg, keys.PageUp):
			m.cursorPos -= m.viewport.Height
			if m.cursorPos < 0 {
				m.cursorPos = 0
			}

			m.ensureCursorVisible()
			m.viewport.SetContent(m.renderEntries())

		case key.Matches(msg, keys.PageDown):
			m.cursorPos += m.viewport.Height
			if m.cursorPos >= m.entryCount() {
				m.cursorPos = m.entryCount() - 1
			}

			if m.cursorPos < 0 {
				m.cursorPos = 0
			}

			m.ensureCursorVisible()
			m.viewport.SetContent(m.renderEntries())

		case key.Matches(msg, keys.Top):
			m.cursorPos = 0
			m.viewport.GotoTop()
			m.viewport.SetContent(m.renderEntries())

		case key.Matches(msg, keys.Bottom):
			if m.entryCount() > 0 {
				m.cursorPos = m.entryCount() - 1
			}

			m.viewport.GotoBottom()
			m.viewport.SetContent(m.renderEntries())

		case key.Matches(msg, keys.Reload):
			return m, reloadSnapshot(m.path)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

// Run starts the bubbletea program for path, watching it for writes so the
// viewer reflects a freshly regenerated playlist without a restart.
func Run(path string) error {
	snap, err := LoadSnapshot(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	m := New(path, snap, watcher)

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui run: %w", err)
	}

	return nil
}

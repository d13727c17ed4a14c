package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/components/listing"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dupes-cli/internal/adapters/driving/tui/views/browse"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// buffer is the sink the finder output is streamed into.
	buffer *listing.Buffer

	// notifier wakes the event loop when the buffer changes.
	notifier *notifier

	// browseView is the listing screen.
	browseView *browse.View

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool

	// quitting is set once the app has asked Bubbletea to exit.
	quitting bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application displaying buffer. The listing is
// redrawn at most refreshPerSecond times a second; zero or less means
// on every change.
func NewApp(ports *Ports, buffer *listing.Buffer, refreshPerSecond int) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if buffer == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingBuffer)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	n := newNotifier(refreshPerSecond)
	buffer.OnChange(n.Notify)

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		buffer:     buffer,
		notifier:   n,
		browseView: browse.NewView(s, km, ports.Session, ports.Actions, buffer),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.browseView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("dupes"),
		a.browseView.Init(),
		a.notifier.Wait(a.ctx),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.browseView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// ctrl+c quits even while a prompt is open
		if msg.Type == tea.KeyCtrlC {
			a.quitting = true
			return a, tea.Quit
		}

	case messages.ListingChanged:
		a.browseView, _ = a.browseView.Update(msg)
		if a.quitting {
			return a, nil
		}
		return a, a.notifier.Wait(a.ctx)

	case messages.Quit:
		a.quitting = true
		return a, tea.Quit
	}

	a.browseView, cmd = a.browseView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.quitting {
		return ""
	}
	return a.browseView.View()
}

// Run starts the TUI and returns the directory chosen with the go-to key,
// empty when the user quit without choosing.
func (a *App) Run() (string, error) {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	if _, err := p.Run(); err != nil {
		return "", err
	}
	return a.ChosenDirectory(), nil
}

// ChosenDirectory returns the directory chosen with the go-to key.
func (a *App) ChosenDirectory() string {
	return a.browseView.ChosenDirectory()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Quitting reports whether the app is exiting.
func (a *App) Quitting() bool {
	return a.quitting
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.browseView.SetDimensions(width, height)
}

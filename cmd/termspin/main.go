// Command termspin rotates a wireframe cube in the terminal by dragging
// with the mouse.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spin/app"
	"github.com/pthm-cable/spin/config"
	"github.com/pthm-cable/spin/rotate"
)

type termView struct {
	screen        tcell.Screen
	app           *app.App
	width, height int

	dragging bool
	last     r2.Vec
}

func newTermView(a *app.App) (*termView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.HideCursor()

	v := &termView{screen: screen, app: a}
	v.width, v.height = screen.Size()
	return v, nil
}

// handleInput returns false when the user asked to quit.
func (v *termView) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				v.app.Reset()
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		p := cellToSurface(col, row, v.width, v.height)
		down := ev.Buttons()&tcell.Button1 != 0
		switch {
		case down && !v.dragging:
			v.dragging = true
			v.app.Surface.Begin(p)
		case down && p != v.last:
			v.app.Surface.Move(p)
		case !down && v.dragging:
			v.dragging = false
			v.app.Surface.End(p)
		}
		v.last = p

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

func (v *termView) draw() {
	v.screen.Clear()

	cells := wireframe(v.app.Orientation(), v.width, v.height)
	// Far edges first so near edges win on overlap
	sort.SliceStable(cells, func(i, j int) bool { return cells[i].Depth < cells[j].Depth })
	for _, c := range cells {
		if c.X < 0 || c.X >= v.width || c.Y < 0 || c.Y >= v.height-1 {
			continue
		}
		ch, style := '.', tcell.StyleDefault.Foreground(tcell.ColorGray)
		if c.Depth > 0 {
			ch, style = '#', tcell.StyleDefault.Foreground(tcell.ColorAqua)
		}
		v.screen.SetContent(c.X, c.Y, ch, nil, style)
	}

	q := v.app.Orientation()
	state := "idle"
	if v.app.Dragging() {
		state = "dragging"
	}
	status := fmt.Sprintf("drag to rotate | r reset | q quit | %s | q=(%+.3f %+.3f %+.3f %+.3f)",
		state, q.Real, q.Imag, q.Jmag, q.Kmag)
	for i, ch := range status {
		if i >= v.width {
			break
		}
		v.screen.SetContent(i, v.height-1, ch, nil, tcell.StyleDefault.Foreground(tcell.ColorSilver))
	}

	v.screen.Show()
}

func (v *termView) run() {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			v.draw()
		}
	}
}

func (v *termView) cleanup() {
	if v.dragging {
		v.app.Surface.End(v.last)
	}
	v.screen.Fini()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logPath := flag.String("log", "", "Write JSON logs to this file (the terminal is taken by the UI)")
	streamOn := flag.Bool("stream", false, "Serve the orientation stream")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	a, err := app.New(cfg, app.Options{
		OutputDir: *outputDir,
		Stream:    cfg.Stream.Enabled || *streamOn,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "starting: %v\n", err)
		os.Exit(1)
	}

	v, err := newTermView(a)
	if err != nil {
		a.Close()
		fmt.Fprintf(os.Stderr, "failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	v.run()
	v.cleanup()

	final := rotate.Normalize(a.Orientation())
	if err := a.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "flushing output: %v\n", err)
	}
	slog.Info("termspin exited", "sessions", len(a.Collector.Sessions()), "final", final)
}

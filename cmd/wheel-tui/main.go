// Command wheel-tui spins a prize wheel in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"reward_wheel/internal/config"
	"reward_wheel/internal/config/env"
	"reward_wheel/internal/render/term"
	"reward_wheel/internal/spinner"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "wheel settings and segments")
	logPath := flag.String("log", "", "write logs to this file")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	logger, closeLog, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(*cfgPath, *mute, logger); err != nil {
		fmt.Fprintf(os.Stderr, "wheel-tui: %v\n", err)
		os.Exit(1)
	}
}

// The screen owns stdout, so logs only go to a file when asked for.
func newLogger(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return zerolog.New(f).With().Timestamp().Logger(), func() { _ = f.Close() }, nil
}

func loadWheelConfig(path string) (config.WheelConfig, error) {
	wc, err := env.NewWheelConfigFromYAML(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return wc, err
}

func engineConfig(wc config.WheelConfig, segments []spinner.Segment) spinner.Config {
	cfg := spinner.Config{Segments: segments}
	if wc != nil {
		cfg.PrimaryColor = wc.PrimaryColor()
		cfg.ContrastColor = wc.ContrastColor()
		cfg.ButtonText = wc.ButtonText()
		cfg.Size = wc.Size()
		cfg.UpDuration = wc.UpDuration()
		cfg.DownDuration = wc.DownDuration()
		cfg.TickUnit = wc.TickUnit()
		cfg.FontFamily = wc.FontFamily()
		cfg.FontSize = wc.FontSize()
		cfg.OutlineWidth = wc.OutlineWidth()
	}
	return cfg.WithDefaults()
}

func run(cfgPath string, mute bool, logger zerolog.Logger) error {
	wc, err := loadWheelConfig(cfgPath)
	if err != nil {
		return err
	}
	segments, err := loadSegments(cfgPath)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	snd := newSounds()
	if !mute {
		if err := snd.init(); err != nil {
			// the wheel works without sound
			logger.Warn().Err(err).Msg("audio init failed")
		}
	}
	defer snd.close()

	frames := make(chan spinner.Frame, 64)
	finished := make(chan string, 1)

	cfg := engineConfig(wc, segments)
	cfg.OnFinished = func(name string) {
		select {
		case finished <- name:
		default:
		}
	}
	painter := term.NewPainter(screen, spinner.NewRenderer(cfg).CanvasSize())

	eng, err := spinner.New(cfg, spinner.Deps{
		Painter: painter,
		OnFrame: func(f spinner.Frame) {
			select {
			case frames <- f:
			default:
			}
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	ui := &view{screen: screen, painter: painter, status: "space, enter or click to spin, q to quit"}
	ui.show()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := eng.CurrentSegment()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				eng.Redraw()
				ui.show()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC,
					ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyEnter,
					ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					ui.spin(eng)
				}
			case *tcell.EventMouse:
				if ev.Buttons()&tcell.Button1 != 0 {
					ui.spin(eng)
				}
			}

		case f := <-frames:
			if f.Segment != last {
				last = f.Segment
				snd.click()
			}
			ui.show()

		case winner := <-finished:
			snd.chime()
			ui.status = "winner: " + winner
			logger.Info().Str("winner", winner).Msg("spin finished")
			ui.show()
		}
	}
}

type view struct {
	screen  tcell.Screen
	painter *term.Painter
	status  string
}

func (v *view) spin(eng *spinner.Engine) {
	if eng.Spin() {
		v.status = "spinning..."
		v.show()
	}
}

// show writes the status line over the last painted frame and flushes.
func (v *view) show() {
	w, h := v.screen.Size()
	if h == 0 {
		return
	}
	style := tcell.StyleDefault.Bold(true)
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, tcell.StyleDefault)
	}
	for i, r := range []rune(v.status) {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, style)
	}
	v.painter.Flush()
}

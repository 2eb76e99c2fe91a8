package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/arrow-rush/audio"
	"github.com/lixenwraith/arrow-rush/config"
	"github.com/lixenwraith/arrow-rush/constants"
	"github.com/lixenwraith/arrow-rush/core"
	"github.com/lixenwraith/arrow-rush/engine"
	"github.com/lixenwraith/arrow-rush/events"
	"github.com/lixenwraith/arrow-rush/input"
	"github.com/lixenwraith/arrow-rush/render"
	"github.com/lixenwraith/arrow-rush/report"
)

type playOptions struct {
	matchFlags
	ResumeNewLine bool
	Mute          bool
}

// NewPlayCommand creates the interactive terminal game command
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rootOpts)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &cfg); err != nil {
				return err
			}
			if opts.Mute {
				cfg.Audio.Enabled = false
			}

			closer, err := setupLogging(cfg.LogFile)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			summary, played, err := runPlay(cfg, opts.ResumeNewLine)
			if err != nil || !played {
				return err
			}
			return report.Write(cmd.OutOrStdout(), outputFormat(rootOpts), summary)
		},
	}

	opts.bind(cmd)
	cmd.Flags().BoolVar(&opts.ResumeNewLine, "resume-new-line", true, "request a line immediately when resuming without one")
	cmd.Flags().BoolVar(&opts.Mute, "mute", false, "start with audio disabled")

	return cmd
}

// runPlay owns the terminal until the player quits
// played is false when no match was ever started
func runPlay(cfg config.Config, resumeNewLine bool) (summary events.MatchSummary, played bool, err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return summary, false, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return summary, false, fmt.Errorf("init screen: %w", err)
	}
	core.RegisterScreen(screen)
	defer func() {
		core.RegisterScreen(nil)
		screen.Fini()
	}()

	sound := newSound(cfg.Audio)
	defer sound.close()

	loop := engine.NewLoop()
	loop.RegisterEventHandler(engine.NewLogHandler(log.Default()))
	loop.RegisterEventHandler(sound.handler)

	eng, err := buildEngine(cfg, loop.Scheduler(), nil, nil)
	if err != nil {
		return summary, false, err
	}
	loop.Start(eng)
	defer loop.Stop()

	keys := input.DefaultKeyTable()
	buffer := input.NewBuffer(0, 0, 0)
	renderer := render.NewTerminalRenderer(screen, constants.FeedbackDisplayDuration)

	eventChan := make(chan tcell.Event, 256)
	done := make(chan struct{})
	defer close(done)
	core.Go(func() { pollEvents(screen, eventChan, done) })

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	draw := func() {
		renderer.RenderFrame(render.View{
			Snapshot: loop.Snapshot(),
			Muted:    sound.handler.Muted(),
			Now:      time.Now(),
		})
	}
	draw()

	for {
		select {
		case ev := <-eventChan:
			in := keys.Map(ev)
			switch in.Type {
			case input.IntentNone:
				continue
			case input.IntentQuit:
				return finalSummary(loop)
			case input.IntentResize:
				screen.Sync()
			case input.IntentMute:
				muted := sound.handler.ToggleMute()
				log.Printf("[APP] muted=%t", muted)
			case input.IntentDirection:
				if buffer.Push(in.Direction, time.Now()) {
					log.Printf("[INPUT] rapid input %s (%d this match)", in.Direction, buffer.RapidCount())
				}
				loop.Submit(in.Direction)
			default:
				if in.Type == input.IntentReset || in.Type == input.IntentStart {
					buffer.Clear()
				}
				loop.Do(func(e *engine.Engine) { applyIntent(e, in, resumeNewLine) })
			}
			draw()

		case <-loop.Updates():
			draw()

		case <-frameTicker.C:
			// Feedback expiry is time-driven, not event-driven
			draw()
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized or done is closed
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		// nil after Fini
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// finalSummary fetches the summary from the loop goroutine
func finalSummary(loop *engine.Loop) (events.MatchSummary, bool, error) {
	type result struct {
		summary events.MatchSummary
		played  bool
	}
	done := make(chan result, 1)
	if !loop.Do(func(e *engine.Engine) {
		done <- result{e.Summary(), e.Phase() != engine.PhaseIdle}
	}) {
		return events.MatchSummary{}, false, nil
	}
	r := <-done
	return r.summary, r.played, nil
}

type soundOutput struct {
	manager *audio.SoundManager
	handler *audio.SoundHandler
}

// newSound initializes the speaker; playback failure leaves the game running silently
func newSound(cfg audio.Config) *soundOutput {
	sm := audio.NewSoundManager(cfg.SampleRate)
	if cfg.Enabled {
		if err := sm.Initialize(); err != nil {
			log.Printf("[AUDIO] initialization failed: %v (continuing without audio)", err)
		}
	}
	return &soundOutput{
		manager: sm,
		handler: audio.NewSoundHandler(sm, cfg),
	}
}

func (s *soundOutput) close() {
	s.manager.Cleanup()
}

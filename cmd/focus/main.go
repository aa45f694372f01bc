package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"exam-prep-be/pkg/focus"
	"exam-prep-be/pkg/stats"

	"github.com/fatih/color"
	"github.com/gen2brain/beeep"
	"github.com/spf13/cobra"
)

var quiet bool

func main() {
	beeep.AppName = "Exam Prep"

	rootCmd := &cobra.Command{
		Use:   "focus",
		Short: "Terminal focus timer",
	}

	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "no desktop alert when a session ends")

	rootCmd.AddCommand(startCmd())
	rootCmd.AddCommand(modesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func modesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List timer modes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range []focus.Mode{focus.ModePomodoro, focus.ModeLong, focus.ModeCustom} {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", m, m.Label())
			}
			return nil
		},
	}
}

func startCmd() *cobra.Command {
	var mode, subject string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := focus.ParseMode(mode)
			if err != nil {
				return err
			}
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), m, subject)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(focus.ModePomodoro), "pomodoro, long or custom")
	cmd.Flags().StringVar(&subject, "subject", "", "subject to credit the session to")
	return cmd
}

// run drives a runner from stdin: p toggles, r resets, m <mode> switches, q quits.
// Once stdin is closed it keeps counting down and returns when the session ends.
func run(in io.Reader, out io.Writer, mode focus.Mode, subject string, opts ...focus.Option) error {
	done := make(chan focus.Completion, 1)
	runner := focus.NewRunner(append(opts,
		focus.OnChange(func(s focus.Snapshot) { fmt.Fprint(out, "\033[2K\r"+render(s)) }),
		focus.OnComplete(func(c focus.Completion) { done <- c }),
	)...)
	defer runner.Close()

	color.New(color.FgCyan).Fprintln(out, "p: start/pause  r: reset  m <mode>: switch  q: quit")
	if subject != "" {
		if _, err := runner.SelectSubject(&focus.Subject{Name: subject}); err != nil {
			return err
		}
	}
	// Selecting the mode starts the countdown.
	if _, err := runner.SelectMode(mode); err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()

	reported := false
	for {
		select {
		case c := <-done:
			finished(out, c)
			reported = true
			if lines == nil {
				return nil
			}
		case line, ok := <-lines:
			if !ok {
				// An expired countdown may still be delivering its completion.
				state := runner.Snapshot().State
				if state == focus.StateRunning || (state == focus.StateExpired && !reported) {
					lines = nil
					continue
				}
				fmt.Fprintln(out)
				return nil
			}
			reported = false
			quit, err := handle(runner, line)
			if err != nil {
				color.New(color.FgRed).Fprintf(out, "\n%v\n", err)
			}
			if quit {
				fmt.Fprintln(out)
				return nil
			}
		}
	}
}

func handle(runner *focus.Runner, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	var err error
	switch fields[0] {
	case "q", "quit":
		return true, nil
	case "p", "pause", "start":
		_, err = runner.Toggle()
	case "r", "reset":
		_, err = runner.Reset()
	case "m", "mode":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: m <pomodoro|long|custom>")
		}
		var m focus.Mode
		if m, err = focus.ParseMode(fields[1]); err == nil {
			_, err = runner.SelectMode(m)
		}
	default:
		err = fmt.Errorf("unknown command %q", fields[0])
	}
	return false, err
}

func render(s focus.Snapshot) string {
	clock := stats.FormatClock(s.RemainingSeconds)
	switch s.State {
	case focus.StateRunning:
		clock = color.GreenString(clock)
	case focus.StatePaused:
		clock = color.YellowString(clock)
	case focus.StateExpired:
		clock = color.RedString(clock)
	}

	line := fmt.Sprintf("%s  %s  [%s]", s.Mode.Label(), clock, s.State)
	if s.Subject != nil {
		line += "  " + s.Subject.Name
	}
	return line
}

func finished(out io.Writer, c focus.Completion) {
	msg := fmt.Sprintf("%d minutes of focus done", c.Minutes)
	if c.Subject != nil {
		msg += " on " + c.Subject.Name
	}
	color.New(color.FgGreen, color.Bold).Fprintf(out, "\n%s\n", msg)

	if !quiet {
		_ = beeep.Alert("Focus session complete", msg, "")
	}
}

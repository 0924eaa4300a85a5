// Command drive launches a child process under a pseudo-terminal, waits
// for a marker line on its output, plays a timed stdin script, and then
// terminates the child. It exists to exercise the linewatch watch loop
// end to end the way an interactive session would:
//
//	drive -marker "linewatch: watch ready" \
//	      -script "1s:pause,1s:resume,1s:quit" \
//	      -- ./linewatch watch --interval 1s
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"

	"github.com/smoreland/linewatch/internal/drive"
)

func main() {
	var (
		marker    = flag.String("marker", "linewatch: watch ready", "Output line to wait for before sending input")
		script    = flag.String("script", "1s:pause,1s:resume,1s:quit", "Comma-separated delay:text input steps")
		killAfter = flag.Duration("kill-after", 30*time.Second, "Deadline for the whole session before the child is killed")
		quiet     = flag.Bool("quiet", false, "Suppress echoing the child's output")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: drive [flags] -- <command> [args...]")
		os.Exit(2)
	}

	steps, err := drive.ParseScript(*script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(*marker, steps, *killAfter, *quiet, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(marker string, steps []drive.Step, killAfter time.Duration, quiet bool, argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	defer ptmx.Close()

	ctx, cancel := context.WithTimeout(context.Background(), killAfter)
	defer cancel()

	var echo io.Writer
	if !quiet {
		echo = os.Stdout
	}

	markerSeen := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	// Reader: scan for the marker, then keep draining so the child
	// never blocks on a full pty buffer. The pty read fails once the
	// child exits, which ends this goroutine.
	g.Go(func() error {
		if err := drive.AwaitMarker(gctx, ptmx, marker, echo); err != nil {
			return err
		}
		close(markerSeen)
		if echo != nil {
			_, _ = io.Copy(echo, ptmx)
		} else {
			_, _ = io.Copy(io.Discard, ptmx)
		}
		return nil
	})

	// Feeder: once the marker shows up, play the script, then ask the
	// child to terminate.
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		case <-markerSeen:
		}
		if err := drive.Play(gctx, ptmx, steps); err != nil {
			return err
		}
		return cmd.Process.Signal(syscall.SIGTERM)
	})

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	select {
	case err := <-waitErr:
		cancel()
		if gerr := g.Wait(); gerr != nil && !errors.Is(gerr, context.Canceled) {
			return gerr
		}
		// A SIGTERM exit is the expected outcome, not a failure.
		if err != nil {
			fmt.Fprintf(os.Stderr, "Child exited: %v\n", err)
		}
		return nil

	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-waitErr
		_ = g.Wait()
		return fmt.Errorf("child did not exit within %s; killed", killAfter)
	}
}

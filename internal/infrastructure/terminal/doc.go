/*
Package terminal runs shell sessions behind PTYs.

# Overview

This package is the concrete half of the session contract: the panel
coordinator asks the Spawner for sessions and drives them through the
session.Session interface; everything process-shaped lives here.

# Components

  - Spawner: creates sessions from shell profiles, implements
    session.Factory. Guards each profile's spawn with a circuit breaker
    so a broken command fails fast.
  - Session: one shell behind a PTY. Lazy start, restart after a
    natural exit, kill on terminate. Publishes output and state changes
    to its observer from its own goroutines.
  - Buffer: bounded ring of recent output, the backlog a stream client
    fetches when it attaches after the session started.
  - Recorder: optional gzip transcript of raw output.

# Lifecycle

	spawner := terminal.NewSpawner(registry, terminal.Config{Cols: 80, Rows: 24}, logger)
	sess, _ := spawner.Create("/home/me/project", "", observer)
	sess.Start()
	sess.Send("ls\n")
	sess.Terminate()

Start spawns the profile's command attached to a fresh PTY and pumps
its output until exit. A session whose shell exited on its own can be
started again into the same pane; a terminated session cannot.
*/
package terminal

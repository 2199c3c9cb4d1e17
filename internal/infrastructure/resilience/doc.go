/*
Package resilience provides a circuit breaker for guarding shell spawns.

# Overview

Spawning a session whose shell binary is missing or crashing fails over
and over, each attempt burning a PTY and a goroutine before reporting
the same error. The breaker counts consecutive failures per profile and,
once tripped, rejects further spawns immediately until a cooldown
passes.

# Usage

	// Create a breaker per shell profile
	breaker := resilience.New("zsh", resilience.Config{
		TripAfter: 3,
		Cooldown:  30 * time.Second,
		OnChange: func(name string, from, to resilience.State) {
			log.Printf("breaker %s: %s -> %s", name, from, to)
		},
	})

	// Guard the spawn
	err := breaker.Do(func() error {
		return spawnShell(profile)
	})
	if errors.Is(err, resilience.ErrOpen) {
		// profile is known-broken, report without retrying
	}

# States

  - Closed: spawns pass through, consecutive failures are counted
  - Open: spawns fail immediately with ErrOpen
  - Half-Open: a limited number of probe spawns are allowed through

# Transitions

	Closed --[TripAfter failures]-> Open --[Cooldown]-> Half-Open
	Half-Open --[probe succeeds]-> Closed
	Half-Open --[probe fails]----> Open
*/
package resilience

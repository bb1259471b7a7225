package command

// Target is what a command acts upon. memory.Session satisfies everything but
// TriggerRestart, which belongs to the renderer that displayed the win
// banner.
type Target interface {
	Click(index int)
	Start()
	Restart() error
	TriggerRestart() bool
}

// Execute applies cmd to t. Get is a no-op here; callers answer it with a
// snapshot.
func Execute(t Target, cmd Command) error {
	switch cmd.Kind {
	case Get:
	case Start:
		t.Start()
	case Click:
		t.Click(cmd.Index)
	case Restart:
		t.TriggerRestart()
	case NewGame:
		return t.Restart()
	default:
		return ErrUnknownCommand
	}
	return nil
}
